package demo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/orbits/internal/assets"
	"github.com/Faultbox/orbits/internal/config"
)

// Asset keys.
const (
	keyEnvironment = "environment"
	keyStarfield   = "starfield"
	keyBodyPrefix  = "body."
)

// assetRequests lists every texture the scene needs.
func assetRequests(cfg config.AssetsConfig) []assets.Request {
	reqs := []assets.Request{
		{Key: keyEnvironment, Ref: cfg.EnvironmentURL},
		{Key: keyStarfield, Ref: cfg.Starfield},
	}
	for i, ref := range cfg.BodyTextures {
		reqs = append(reqs, assets.Request{Key: fmt.Sprintf("%s%d", keyBodyPrefix, i), Ref: ref})
	}
	return reqs
}

// bodyIndex parses a body asset key.
func bodyIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, keyBodyPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || i >= config.BodyCount {
		return 0, false
	}
	return i, true
}

func (d *Demo) startAssets() {
	d.assets = assets.NewManager(d.cfg.Assets.Dir,
		assets.WithTimeout(d.cfg.Assets.FetchTimeout),
		assets.WithLogger(d.log.Named("assets")))

	var ctx context.Context
	ctx, d.stopAssets = context.WithCancel(context.Background())
	d.pending = d.assets.FetchAll(ctx, assetRequests(d.cfg.Assets))
}

// pollAssets uploads every asset that finished loading since the last
// frame without blocking.
func (d *Demo) pollAssets() {
	for d.pending != nil {
		select {
		case res, ok := <-d.pending:
			if !ok {
				d.pending = nil
				hits, misses := d.assets.Stats()
				d.log.Info("assets loaded", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))
				return
			}
			d.applyAsset(res)
		default:
			return
		}
	}
}

func (d *Demo) applyAsset(res assets.Result) {
	if res.Err != nil {
		// The scene keeps its placeholder
		d.log.Warn("asset unavailable", zap.String("key", res.Key), zap.String("ref", res.Ref), zap.Error(res.Err))
		return
	}

	switch {
	case res.Key == keyEnvironment && res.HDR != nil:
		d.scene.SetEnvironment(res.HDR)
	case res.Key == keyStarfield && res.Image != nil:
		d.scene.SetStarfield(res.Image)
	case res.Image != nil:
		i, ok := bodyIndex(res.Key)
		if !ok {
			d.log.Warn("unexpected asset", zap.String("key", res.Key))
			return
		}
		if err := d.scene.SetBodyTexture(i, res.Image); err != nil {
			d.log.Warn("body texture rejected", zap.Error(err))
			return
		}
	default:
		d.log.Warn("asset has unexpected type", zap.String("key", res.Key), zap.String("ref", res.Ref))
		return
	}
	d.log.Debug("asset applied", zap.String("key", res.Key))
}
