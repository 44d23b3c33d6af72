package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/sirupsen/logrus"
)

var ErrAlreadyStarted = errors.New("view already started")

// Renderer draws a snapshot.
type Renderer interface {
	Render(Snapshot) error
}

type Option func(*View)

// WithClock replaces time.Now as the source of the current time.
func WithClock(clock func() time.Time) Option {
	return func(v *View) {
		v.clock = clock
	}
}

// WithInterval sets how often the countdown clock ticks.
func WithInterval(interval time.Duration) Option {
	return func(v *View) {
		v.interval = interval
	}
}

// View owns the dashboard state between Start and Stop: a job set loaded once
// and a clock that ticks every interval. Nothing is rendered after Stop returns.
type View struct {
	loader   types.JobLoader
	renderer Renderer
	logger   *logrus.Logger
	clock    func() time.Time
	interval time.Duration

	mu   sync.RWMutex
	jobs []types.Job
	now  time.Time

	renderMu sync.Mutex

	lifecycle sync.Mutex
	started   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewView(loader types.JobLoader, renderer Renderer, logger *logrus.Logger, opts ...Option) *View {
	v := &View{
		loader:   loader,
		renderer: renderer,
		logger:   logger,
		clock:    time.Now,
		interval: time.Second,
		jobs:     []types.Job{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.now = v.clock()
	return v
}

// Start renders the empty dashboard, then loads the job set in the background
// and starts the countdown clock.
func (v *View) Start(ctx context.Context) error {
	v.lifecycle.Lock()
	defer v.lifecycle.Unlock()

	if v.started {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.started = true

	v.render()

	v.wg.Add(2)
	go v.load(ctx)
	go v.tick(ctx)

	v.logger.WithField("interval", v.interval.String()).Debug("Dashboard view started")
	return nil
}

// Stop cancels the pending load and the clock and waits for both to exit.
func (v *View) Stop() {
	v.lifecycle.Lock()
	defer v.lifecycle.Unlock()

	if !v.started {
		return
	}

	v.cancel()
	v.wg.Wait()
	v.started = false
	v.logger.Debug("Dashboard view stopped")
}

// Snapshot derives the current cards from the job set and the clock.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return BuildSnapshot(v.jobs, v.now)
}

// Jobs returns the job set in display order.
func (v *View) Jobs() []types.Job {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]types.Job(nil), v.jobs...)
}

func (v *View) load(ctx context.Context) {
	defer v.wg.Done()

	jobs := v.loader.Load(ctx)
	if ctx.Err() != nil {
		v.logger.Debug("Dashboard view stopped before jobs were loaded, discarding result")
		return
	}

	v.setJobs(jobs)
	v.render()
}

func (v *View) tick(ctx context.Context) {
	defer v.wg.Done()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			v.setNow(v.clock())
			v.render()
		case <-ctx.Done():
			return
		}
	}
}

func (v *View) setJobs(jobs []types.Job) {
	sorted := SortByNextRun(jobs)

	v.mu.Lock()
	v.jobs = sorted
	v.mu.Unlock()
}

func (v *View) setNow(now time.Time) {
	v.mu.Lock()
	v.now = now
	v.mu.Unlock()
}

func (v *View) render() {
	snapshot := v.Snapshot()

	v.renderMu.Lock()
	defer v.renderMu.Unlock()

	if err := v.renderer.Render(snapshot); err != nil {
		v.logger.WithError(err).Error("Failed to render dashboard")
	}
}
