package carousel

import (
	"bufio"
	"context"
	"strconv"
	"time"

	rotator "github.com/edugroup/site-api/carousel"
	"github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/response"
	"github.com/edugroup/site-api/utils/sse"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StreamState is sent when a stream opens
type StreamState struct {
	Kind     rotator.Kind `json:"kind"`
	Items    int          `json:"items"`
	Window   int          `json:"window"`
	Index    int          `json:"index"`
	Interval int64        `json:"interval_ms"`
}

// Rotation is sent every time the window moves
type Rotation struct {
	Index int `json:"index"`
}

// Stream handles GET /api/v1/carousel/stream?kind=images|news|updates|achievers.
// Each connection gets its own rotator; rotate events carry the index of the
// first visible item. An optional limit closes the stream after that many
// rotations.
func (h *CarouselHandler) Stream(c *fiber.Ctx) error {
	kind, ok := rotator.ParseKind(c.Query("kind"))
	if !ok {
		return response.BadRequest(c, "kind must be one of images, news, updates, achievers")
	}
	count, ok := h.counters[kind]
	if !ok {
		return response.BadRequest(c, "carousel kind is not available")
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return response.BadRequest(c, "limit must be a positive number")
		}
		limit = n
	}

	items := count(c.UserContext())
	cfg := rotator.Config{
		Items:      items,
		Window:     rotator.WindowSize(kind),
		Interval:   h.stream.Interval,
		Transition: h.stream.Transition,
	}
	keepAlive := h.stream.KeepAlive

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// the request context is gone once the writer runs
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		r := rotator.New(cfg)
		defer r.Stop()
		rotations := r.Subscribe()

		err := sse.SendStarted(w, StreamState{
			Kind:     kind,
			Items:    cfg.Items,
			Window:   cfg.Window,
			Index:    r.Index(),
			Interval: cfg.Interval.Milliseconds(),
		})
		if err != nil {
			return
		}
		r.Start(ctx)

		ping := time.NewTicker(keepAlive)
		defer ping.Stop()

		sent := 0
		for {
			select {
			case idx, open := <-rotations:
				if !open {
					return
				}
				sent++
				if err := sse.Send(w, sse.Event{
					Event: "rotate",
					ID:    strconv.Itoa(sent),
					Data:  Rotation{Index: idx},
				}); err != nil {
					logger.L().Debug("carousel stream closed", zap.String("kind", string(kind)), zap.Error(err))
					return
				}
				if limit > 0 && sent >= limit {
					return
				}
			case <-ping.C:
				if err := sse.SendKeepAlive(w); err != nil {
					return
				}
			}
		}
	})

	return nil
}
