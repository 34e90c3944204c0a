// Package site renders the HTML pages from embedded or on-disk templates.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/okian/webbasics/pkg/logger"
	"github.com/okian/webbasics/pkg/metrics"
)

const (
	templatePattern = "*.html"

	// liveReloadKey is injected into every render so pages can open the reload socket.
	liveReloadKey = "liveReloadPath"

	nanosecondsPerMillisecond = 1e6
)

// Renderer executes named templates from a parsed set. The set can be swapped at
// runtime by Reload while renders are in flight.
type Renderer struct {
	mu  sync.RWMutex
	set *template.Template

	dir            string
	liveReloadPath string
	log            logger.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDir loads templates from dir on disk instead of the embedded set.
func WithDir(dir string) Option {
	return func(r *Renderer) { r.dir = dir }
}

// WithLiveReload makes every page connect to the websocket at path. Empty disables it.
func WithLiveReload(path string) Option {
	return func(r *Renderer) { r.liveReloadPath = path }
}

// WithLogger sets the logger used for reload events.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// NewRenderer parses the template set once and returns a ready renderer.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	set, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.set = set
	return r, nil
}

// Dir returns the on-disk template directory, or "" when the embedded set is used.
func (r *Renderer) Dir() string { return r.dir }

func (r *Renderer) source() fs.FS {
	if r.dir != "" {
		return os.DirFS(r.dir)
	}
	return FS()
}

func (r *Renderer) parse() (*template.Template, error) {
	set, err := template.ParseFS(r.source(), templatePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return set, nil
}

// Reload re-parses the template set. On failure the previous set stays active.
func (r *Renderer) Reload(ctx context.Context) error {
	set, err := r.parse()
	if err != nil {
		metrics.RecordTemplateReload("error")
		if r.log != nil {
			r.log.Warn(ctx, "template reload failed; keeping previous set", logger.Error(err))
		}
		return err
	}

	r.mu.Lock()
	r.set = set
	r.mu.Unlock()

	metrics.RecordTemplateReload("ok")
	if r.log != nil {
		r.log.Info(ctx, "templates reloaded", logger.String("dir", r.dir))
	}
	return nil
}

// Render executes the template called name with data and writes the result to w.
// Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, name string, data map[string]any) error {
	start := time.Now()

	r.mu.RLock()
	tmpl := r.set.Lookup(name)
	r.mu.RUnlock()
	if tmpl == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	bound := make(map[string]any, len(data)+1)
	for k, v := range data {
		bound[k] = v
	}
	bound[liveReloadKey] = r.liveReloadPath

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, bound)
	latencyMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	if err != nil {
		metrics.RecordTemplateRender(name, "error", latencyMs)
		return fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	metrics.RecordTemplateRender(name, "ok", latencyMs)

	_, err = buf.WriteTo(w)
	return err
}
