package screen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samvad-hq/employee-directory/internal/domain"
	"github.com/samvad-hq/employee-directory/internal/logger"
	"github.com/samvad-hq/employee-directory/internal/metrics"
	"github.com/samvad-hq/employee-directory/internal/render"
	"github.com/samvad-hq/employee-directory/internal/ui"
	"github.com/samvad-hq/employee-directory/pkg/async"
	"github.com/samvad-hq/employee-directory/pkg/employeeapi"
)

// DefaultNotificationTTL matches a short toast.
const DefaultNotificationTTL = 2 * time.Second

// State is the lifecycle of the screen's single request.
type State int32

const (
	Idle State = iota
	Pending
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Options carries the optional collaborators of a Screen.
type Options struct {
	Renderer        render.Renderer
	NotificationTTL time.Duration
	Metrics         *metrics.Metrics
	Log             logger.Logger
}

// Screen fetches the employee list once it is ready and shows the result on its surface.
type Screen struct {
	api       employeeapi.Client
	loop      *ui.Loop
	surface   ui.Surface
	render    render.Renderer
	notifyTTL time.Duration
	metrics   *metrics.Metrics
	log       logger.Logger

	state    atomic.Int32
	disposed atomic.Bool
	ready    sync.Once

	mu      sync.Mutex
	cancel  context.CancelFunc
	lastErr error

	settled    chan struct{}
	settleOnce sync.Once
}

// New wires a screen. The surface must only be touched from loop.
func New(api employeeapi.Client, loop *ui.Loop, surface ui.Surface, opts Options) (*Screen, error) {
	if api == nil {
		return nil, fmt.Errorf("employee api client must not be nil")
	}
	if loop == nil {
		return nil, fmt.Errorf("ui loop must not be nil")
	}
	if surface == nil {
		return nil, fmt.Errorf("surface must not be nil")
	}
	if opts.Renderer == nil {
		opts.Renderer = render.Text
	}
	if opts.NotificationTTL <= 0 {
		opts.NotificationTTL = DefaultNotificationTTL
	}

	return &Screen{
		api:       api,
		loop:      loop,
		surface:   surface,
		render:    opts.Renderer,
		notifyTTL: opts.NotificationTTL,
		metrics:   opts.Metrics,
		log:       logger.Ensure(opts.Log),
		settled:   make(chan struct{}),
	}, nil
}

// State reports the current request state.
func (s *Screen) State() State {
	return State(s.state.Load())
}

// Err returns the error of a failed request.
func (s *Screen) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Settled is closed once the request resolved, failed, or the screen was torn down.
func (s *Screen) Settled() <-chan struct{} {
	return s.settled
}

// OnScreenReady starts the employee request. Only the first call has an effect.
func (s *Screen) OnScreenReady(ctx context.Context) {
	s.ready.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		if s.disposed.Load() {
			s.settle()
			return
		}

		reqCtx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		s.cancel = cancel
		s.mu.Unlock()

		s.state.Store(int32(Pending))
		s.log.InfoObj("employees request started", "screen_state", Pending.String())

		start := time.Now()
		handle := s.api.GetEmployees(reqCtx)
		go s.await(reqCtx, handle, start)
	})
}

// Teardown cancels any in-flight request. Results arriving afterwards are dropped.
func (s *Screen) Teardown() {
	if !s.disposed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.settle()
}

func (s *Screen) await(ctx context.Context, handle *async.Handle[domain.EmployeeResponse], start time.Time) {
	resp, err := handle.Await(ctx)
	elapsed := time.Since(start)

	if s.dropped(ctx) {
		return
	}

	posted := s.loop.Post(func() {
		defer s.settle()
		if s.disposed.Load() {
			return
		}
		if err != nil {
			s.fail(err, elapsed)
			return
		}
		s.show(resp, elapsed)
	})
	if !posted {
		s.log.WarnObj("ui loop closed; dropping employees result", "screen_state", s.State().String())
		s.settle()
		return
	}

	select {
	case <-s.settled:
	case <-s.loop.Done():
		// the loop may stop with the completion still queued
		if s.State() == Pending {
			s.log.WarnObj("ui loop stopped before employees result was shown", "screen_state", Pending.String())
		}
		s.settle()
	}
}

func (s *Screen) dropped(ctx context.Context) bool {
	if !s.disposed.Load() && ctx.Err() == nil {
		return false
	}
	s.log.DebugObj("screen torn down; dropping employees result", "screen_state", s.State().String())
	s.settle()
	return true
}

// show runs on the loop goroutine.
func (s *Screen) show(resp domain.EmployeeResponse, elapsed time.Duration) {
	text, err := s.render(resp.Employees)
	if err != nil {
		s.fail(fmt.Errorf("render employees: %w", err), elapsed)
		return
	}

	s.surface.SetText(text)
	s.state.Store(int32(Resolved))
	s.metrics.ObserveFetch(metrics.OutcomeSuccess, elapsed)
	s.metrics.SetRendered(len(resp.Employees))

	for _, e := range resp.Employees {
		s.log.DebugObj("employee", "employee", map[string]any{
			"name":    e.Name,
			"profile": e.Profile,
		})
	}
	s.log.InfoObj("employees rendered", "employees_result", map[string]any{
		"message":    resp.Message,
		"count":      len(resp.Employees),
		"elapsed_ms": elapsed.Milliseconds(),
	})
}

// fail runs on the loop goroutine.
func (s *Screen) fail(err error, elapsed time.Duration) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.surface.ShowNotification(employeeapi.UserMessage(err), s.notifyTTL)
	s.state.Store(int32(Failed))
	s.metrics.ObserveFetch(outcomeFor(err), elapsed)

	s.log.WarnObj("employees request failed", "employees_error", map[string]any{
		"kind":       employeeapi.Kind(err),
		"error":      err.Error(),
		"elapsed_ms": elapsed.Milliseconds(),
	})
}

func (s *Screen) settle() {
	s.settleOnce.Do(func() { close(s.settled) })
}

func outcomeFor(err error) string {
	switch employeeapi.Kind(err) {
	case employeeapi.KindConnectivity:
		return metrics.OutcomeConnectivity
	case employeeapi.KindApplication:
		return metrics.OutcomeApplication
	case employeeapi.KindParse:
		return metrics.OutcomeParse
	default:
		return metrics.OutcomeUnknown
	}
}
