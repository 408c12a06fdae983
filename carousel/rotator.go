package carousel

import (
	"context"
	"sync"
	"time"
)

// Kind names a carousel on the public site
type Kind string

const (
	KindUpdates   Kind = "updates"
	KindNews      Kind = "news"
	KindImages    Kind = "images"
	KindAchievers Kind = "achievers"
)

// Number of items visible at once for each kind
const (
	WindowUpdates   = 3
	WindowNews      = 3
	WindowImages    = 1
	WindowAchievers = 4
)

const (
	DefaultInterval   = 5 * time.Second
	DefaultTransition = 500 * time.Millisecond
)

// WindowSize returns the visible window for kind, or 0 for an unknown kind
func WindowSize(kind Kind) int {
	switch kind {
	case KindUpdates:
		return WindowUpdates
	case KindNews:
		return WindowNews
	case KindImages:
		return WindowImages
	case KindAchievers:
		return WindowAchievers
	}
	return 0
}

// ParseKind accepts the kinds above; images is the default
func ParseKind(s string) (Kind, bool) {
	if s == "" {
		return KindImages, true
	}
	k := Kind(s)
	return k, WindowSize(k) > 0
}

type Config struct {
	Items      int
	Window     int
	Interval   time.Duration
	Transition time.Duration
}

// Rotator holds the index of the first visible item of a carousel.
//
// It is either idle at an index or advancing towards one. While advancing,
// further moves are dropped until the transition elapses. Start runs an
// auto-play loop that moves forward one step per interval unless paused.
type Rotator struct {
	cfg Config

	mu        sync.Mutex
	index     int
	advancing bool
	paused    bool
	stopped   bool
	settle    *time.Timer
	subs      []chan int

	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	done      chan struct{}
}

func New(cfg Config) *Rotator {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	if cfg.Items < 0 {
		cfg.Items = 0
	}
	return &Rotator{
		cfg:  cfg,
		quit: make(chan struct{}),
	}
}

// NewForKind builds a rotator with the default timings for kind
func NewForKind(kind Kind, items int) *Rotator {
	return New(Config{
		Items:      items,
		Window:     WindowSize(kind),
		Interval:   DefaultInterval,
		Transition: DefaultTransition,
	})
}

// last is the highest index the window may start at
func (r *Rotator) last() int {
	if r.cfg.Items <= r.cfg.Window {
		return 0
	}
	return r.cfg.Items - r.cfg.Window
}

// Start launches auto-play. It returns at once; the loop ends on Stop or
// when ctx is done. A non-positive interval disables auto-play.
func (r *Rotator) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		if r.cfg.Interval <= 0 {
			return
		}
		r.done = make(chan struct{})
		go r.loop(ctx)
	})
}

func (r *Rotator) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.quit:
			return
		case <-ticker.C:
			r.mu.Lock()
			paused := r.paused
			r.mu.Unlock()
			if !paused {
				r.Next()
			}
		}
	}
}

func (r *Rotator) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

func (r *Rotator) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
}

func (r *Rotator) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

func (r *Rotator) Next() bool { return r.Advance(1) }

func (r *Rotator) Prev() bool { return r.Advance(-1) }

// Advance moves the window by step. Moving past the last start wraps to 0 and
// moving before 0 wraps to the last start. It reports whether the index
// changed; moves while advancing, after Stop, or with nothing to rotate are
// ignored.
func (r *Rotator) Advance(step int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	last := r.last()
	if step == 0 || r.stopped || r.advancing || last == 0 {
		return false
	}

	next := r.index + step
	switch {
	case next > last:
		next = 0
	case next < 0:
		next = last
	}
	r.index = next

	if r.cfg.Transition > 0 {
		r.advancing = true
		r.settle = time.AfterFunc(r.cfg.Transition, r.finishTransition)
	}

	for _, ch := range r.subs {
		publish(ch, next)
	}
	return true
}

func (r *Rotator) finishTransition() {
	r.mu.Lock()
	r.advancing = false
	r.settle = nil
	r.mu.Unlock()
}

// Index returns the first visible item
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

func (r *Rotator) Advancing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advancing
}

// Subscribe returns a channel that receives the index after every move. Slow
// readers only see the latest index. The channel is closed by Stop.
func (r *Rotator) Subscribe() <-chan int {
	ch := make(chan int, 1)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		close(ch)
		return ch
	}
	r.subs = append(r.subs, ch)
	return ch
}

// Stop ends auto-play, cancels a pending transition and closes subscriber
// channels. It is safe to call more than once.
func (r *Rotator) Stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
		// Start may still be racing; taking the once here makes it a no-op.
		r.startOnce.Do(func() {})
		if r.done != nil {
			<-r.done
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		r.stopped = true
		if r.settle != nil {
			r.settle.Stop()
			r.settle = nil
		}
		r.advancing = false
		for _, ch := range r.subs {
			close(ch)
		}
		r.subs = nil
	})
}

// publish replaces any unread value with v
func publish(ch chan int, v int) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
