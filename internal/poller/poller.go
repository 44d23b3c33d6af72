package poller

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/schedule"
	"github.com/sirupsen/logrus"
)

// Loader accepts a fresh job table.
type Loader interface {
	Load(defs []schedule.Definition) error
}

// Poller re-reads the job table file on an interval and hands it to the
// loader whenever the file changed. A table that fails to load leaves the
// previous one in place.
type Poller struct {
	loader   Loader
	logger   *logrus.Logger
	path     string
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup

	modTime time.Time
}

func New(loader Loader, path string, logger *logrus.Logger, interval time.Duration) *Poller {
	p := &Poller{
		loader:   loader,
		logger:   logger,
		path:     path,
		interval: interval,
		stop:     make(chan struct{}),
	}
	if info, err := os.Stat(path); err == nil {
		p.modTime = info.ModTime()
	}
	return p
}

// Start launches the reload loop. It runs until Stop or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()
	defer p.logger.Debug("Job table poller stopped")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.update()
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		}
	}
}

func (p *Poller) Stop() {
	p.once.Do(func() { close(p.stop) })
	p.wg.Wait()
}

// update reports whether a new table was loaded.
func (p *Poller) update() bool {
	info, err := os.Stat(p.path)
	if err != nil {
		p.logger.Errorf("Failed to stat jobs file %s: %v", p.path, err)
		return false
	}
	if !info.ModTime().After(p.modTime) {
		return false
	}

	p.logger.Debugf("Jobs file %s changed, reloading", p.path)

	defs, err := schedule.LoadDefinitions(p.path)
	if err != nil {
		p.logger.Errorf("Failed to reload jobs: %v", err)
		return false
	}
	if err := p.loader.Load(defs); err != nil {
		p.logger.Errorf("Rejected job table, keeping previous one: %v", err)
		// don't retry the same broken file every tick
		p.modTime = info.ModTime()
		return false
	}

	p.modTime = info.ModTime()
	p.logger.WithFields(logrus.Fields{
		"path": p.path,
		"jobs": len(defs),
	}).Info("Job table reloaded")

	return true
}
