package assets

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/orbits/internal/engine/texture"
)

// Request names one asset to load.
type Request struct {
	// Key identifies the consumer, e.g. "body.2" or "environment".
	Key string
	Ref string
}

// Result is one loaded asset. Exactly one of Image, HDR and Err is set.
type Result struct {
	Key string
	Ref string

	Image *image.RGBA
	HDR   *texture.HDR
	Err   error
}

// FetchAll loads and decodes every request in the background and delivers
// one Result per request on the returned channel, in completion order. The
// channel is closed once every result has been delivered. Failures are
// delivered as results.
func (m *Manager) FetchAll(ctx context.Context, reqs []Request) <-chan Result {
	out := make(chan Result, len(reqs))

	var g errgroup.Group
	g.SetLimit(m.concurrency)

	go func() {
		defer close(out)
		start := time.Now()
		for _, req := range reqs {
			req := req
			g.Go(func() error {
				out <- m.decode(ctx, req)
				return nil
			})
		}
		_ = g.Wait()
		m.log.Debug("assets loaded", zap.Int("count", len(reqs)), zap.Duration("took", time.Since(start)))
	}()

	return out
}

func (m *Manager) decode(ctx context.Context, req Request) Result {
	res := Result{Key: req.Key, Ref: req.Ref}

	data, err := m.Load(ctx, req.Ref)
	if err != nil {
		res.Err = err
		return res
	}

	if IsHDR(req.Ref) {
		res.HDR, res.Err = DecodeHDR(data)
		return res
	}
	res.Image, _, res.Err = DecodeImage(data)
	return res
}
