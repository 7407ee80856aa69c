package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/samvad-hq/employee-directory/internal/config"
	"github.com/samvad-hq/employee-directory/internal/logger"
	"github.com/samvad-hq/employee-directory/internal/metrics"
	"github.com/samvad-hq/employee-directory/internal/render"
	"github.com/samvad-hq/employee-directory/internal/screen"
	"github.com/samvad-hq/employee-directory/internal/ui"
	"github.com/samvad-hq/employee-directory/pkg/employeeapi"
	"github.com/samvad-hq/employee-directory/pkg/httpclient"
)

// Options overrides the runtime's outer collaborators.
type Options struct {
	Out        io.Writer
	Notices    io.Writer
	HTTPClient httpclient.Client
	Registerer prometheus.Registerer
}

// Directory is the employee directory runtime: one screen, its presentation
// loop and the API client feeding it.
type Directory struct {
	cfg     *config.Config
	log     logger.Logger
	loop    *ui.Loop
	surface *ui.TerminalSurface
	screen  *screen.Screen
	metrics *metrics.Metrics
}

// NewDirectory builds the runtime from config.
func NewDirectory(cfg *config.Config, log logger.Logger, opts Options) (*Directory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Notices == nil {
		opts.Notices = os.Stderr
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = httpclient.NewRestyClient(cfg.RequestTimeout)
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.NewRegistry()
	}

	renderer, err := render.For(cfg.RenderFormat)
	if err != nil {
		return nil, fmt.Errorf("resolve renderer: %w", err)
	}

	api, err := employeeapi.NewHTTPClient(opts.HTTPClient, employeeapi.Options{
		BaseURL:   cfg.APIBaseURL,
		UserAgent: cfg.APIUserAgent,
		Accept:    "application/json",
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init employee api: %w", err)
	}
	log.InfoObj("employee api configured", "api_config", map[string]any{
		"url":             api.URL(),
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
	})

	m := metrics.NewMetrics(opts.Registerer)
	loop := ui.NewLoop(0)
	surface := ui.NewTerminalSurface(opts.Out, opts.Notices)

	scr, err := screen.New(api, loop, surface, screen.Options{
		Renderer:        renderer,
		NotificationTTL: cfg.NotificationTTL,
		Metrics:         m,
		Log:             log,
	})
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	return &Directory{
		cfg:     cfg,
		log:     log,
		loop:    loop,
		surface: surface,
		screen:  scr,
		metrics: m,
	}, nil
}

// Run shows the screen until its request settles or ctx is cancelled.
// A failed request is reported as an error once its notification has expired.
func (d *Directory) Run(ctx context.Context) error {
	if d == nil || d.screen == nil {
		return fmt.Errorf("directory is not initialized")
	}

	go d.loop.Run(ctx)
	defer d.loop.Close()
	defer d.screen.Teardown()

	d.screen.OnScreenReady(ctx)

	select {
	case <-ctx.Done():
		d.log.InfoObj("directory exiting", "reason", ctx.Err())
		return nil
	case <-d.screen.Settled():
	}

	switch d.screen.State() {
	case screen.Failed:
		d.holdNotification(ctx)
		return fmt.Errorf("load employees: %w", d.screen.Err())
	case screen.Resolved:
		d.log.InfoObj("directory ready", "screen_state", screen.Resolved.String())
	}
	return nil
}

// holdNotification keeps the runtime alive for the notification's lifetime.
func (d *Directory) holdNotification(ctx context.Context) {
	timer := time.NewTimer(d.cfg.NotificationTTL)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Text returns what the screen currently displays.
func (d *Directory) Text() string {
	return d.surface.Text()
}
