package carousel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func manual(items, window int) *Rotator {
	return New(Config{Items: items, Window: window})
}

func TestNextWrapsToStartAfterLastWindow(t *testing.T) {
	for _, tc := range []struct {
		name          string
		items, window int
	}{
		{"updates", 7, WindowUpdates},
		{"images", 5, WindowImages},
		{"achievers", 9, WindowAchievers},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := manual(tc.items, tc.window)
			defer r.Stop()

			steps := tc.items - tc.window + 1
			for i := 1; i < steps; i++ {
				require.True(t, r.Next())
				assert.Equal(t, i, r.Index())
			}
			require.True(t, r.Next())
			assert.Equal(t, 0, r.Index())
		})
	}
}

func TestPrevBeforeStartGoesToLastWindow(t *testing.T) {
	r := manual(7, WindowNews)
	defer r.Stop()

	require.True(t, r.Prev())
	assert.Equal(t, 4, r.Index())
	require.True(t, r.Prev())
	assert.Equal(t, 3, r.Index())
}

func TestFewerItemsThanWindowNeverMoves(t *testing.T) {
	r := manual(3, WindowAchievers)
	defer r.Stop()

	assert.False(t, r.Next())
	assert.False(t, r.Prev())
	assert.Equal(t, 0, r.Index())

	empty := manual(0, WindowImages)
	defer empty.Stop()
	assert.False(t, empty.Next())
}

func TestAdvanceIgnoredDuringTransition(t *testing.T) {
	r := New(Config{Items: 5, Window: 1, Transition: time.Hour})
	defer r.Stop()

	require.True(t, r.Next())
	assert.True(t, r.Advancing())
	assert.False(t, r.Next())
	assert.False(t, r.Prev())
	assert.Equal(t, 1, r.Index())
}

func TestTransitionSettles(t *testing.T) {
	r := New(Config{Items: 5, Window: 1, Transition: 5 * time.Millisecond})
	defer r.Stop()

	require.True(t, r.Next())
	require.Eventually(t, func() bool { return !r.Advancing() }, time.Second, time.Millisecond)
	require.True(t, r.Next())
	assert.Equal(t, 2, r.Index())
}

func TestSubscribeReceivesLatestIndex(t *testing.T) {
	r := manual(6, 1)
	ch := r.Subscribe()

	r.Next()
	r.Next()
	r.Next()
	assert.Equal(t, 3, <-ch)

	r.Stop()
	_, open := <-ch
	assert.False(t, open)

	late := r.Subscribe()
	_, open = <-late
	assert.False(t, open)
	assert.False(t, r.Next())
}

func TestAutoPlayAdvancesAndPauses(t *testing.T) {
	r := New(Config{Items: 4, Window: 1, Interval: 5 * time.Millisecond})
	ch := r.Subscribe()
	r.Start(context.Background())
	defer r.Stop()

	select {
	case idx := <-ch:
		assert.Equal(t, 1, idx)
	case <-time.After(time.Second):
		t.Fatal("auto-play did not advance")
	}

	r.Pause()
	require.True(t, r.Paused())
	// drain a tick that may have raced the pause
	select {
	case <-ch:
	case <-time.After(20 * time.Millisecond):
	}
	at := r.Index()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, at, r.Index())

	r.Resume()
	require.Eventually(t, func() bool { return r.Index() != at }, time.Second, time.Millisecond)
}

func TestContextCancelEndsAutoPlay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(Config{Items: 4, Window: 1, Interval: time.Millisecond})
	r.Start(ctx)
	cancel()
	r.Stop()
	r.Stop()
}

func TestStopBeforeStart(t *testing.T) {
	r := New(Config{Items: 4, Window: 1, Interval: time.Millisecond})
	r.Stop()
	r.Start(context.Background())
	assert.False(t, r.Next())
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("")
	assert.True(t, ok)
	assert.Equal(t, KindImages, k)

	k, ok = ParseKind("achievers")
	assert.True(t, ok)
	assert.Equal(t, 4, WindowSize(k))

	_, ok = ParseKind("banners")
	assert.False(t, ok)
}
