// Package assets loads and decodes the demo's textures. Refs starting with
// http:// or https:// are fetched over the network; anything else is read
// from the asset directory. Raw bytes are cached by ref.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbits/internal/logger"
)

// MaxAssetSize bounds a single download.
const MaxAssetSize = 64 << 20

// DefaultConcurrency is the number of assets decoded at once.
const DefaultConcurrency = 4

// ErrTooLarge is returned for assets over MaxAssetSize.
var ErrTooLarge = errors.New("asset exceeds size limit")

// Manager handles asset loading from the asset directory and the network.
type Manager struct {
	dir         string
	client      *http.Client
	timeout     time.Duration
	concurrency int
	cache       *Cache
	log         *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient sets the client used for remote refs.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithTimeout bounds each remote fetch. Zero means no limit beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithConcurrency sets how many assets FetchAll decodes at once.
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager creates a manager reading local refs relative to dir.
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		dir:         dir,
		client:      http.DefaultClient,
		concurrency: DefaultConcurrency,
		cache:       NewCache(),
		log:         logger.Named("assets"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsRemote reports whether ref is fetched over HTTP.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load returns the raw bytes of ref.
func (m *Manager) Load(ctx context.Context, ref string) ([]byte, error) {
	if data, ok := m.cache.Get(ref); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	if IsRemote(ref) {
		data, err = m.fetch(ctx, ref)
	} else {
		data, err = m.readFile(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(ref, data)
	return data, nil
}

func (m *Manager) fetch(ctx context.Context, url string) ([]byte, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	start := time.Now()
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) > MaxAssetSize {
		return nil, fmt.Errorf("fetching %s: %w", url, ErrTooLarge)
	}

	m.log.Debug("fetched asset",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)))
	return data, nil
}

func (m *Manager) readFile(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.FromSlash(ref)
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", ref, err)
	}
	return data, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}
