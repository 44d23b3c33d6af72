package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/0xPuncker/cron-dashboard/pkg/utils"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrMissingSchedule = errors.New("job needs a schedule or a next_run")
)

const scheduleCacheKey = "schedule:%s"

var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Registry serves the configured job table with next runs computed from cron
// expressions. Nothing is ever executed.
type Registry struct {
	cache  *cache.Cache
	logger *logrus.Logger
	defs   []Definition
	mu     sync.RWMutex
}

func NewRegistry(defs []Definition, logger *logrus.Logger, cacheTTL time.Duration) (*Registry, error) {
	r := &Registry{
		cache:  cache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
	}
	if err := r.Load(defs); err != nil {
		return nil, err
	}
	return r, nil
}

// Load replaces the job table. Every enabled definition must carry a valid
// schedule or an explicit next run.
func (r *Registry) Load(defs []Definition) error {
	loaded := make([]Definition, 0, len(defs))
	seen := make(map[string]bool, len(defs))

	for _, def := range defs {
		if def.ID == "" {
			def.ID = uuid.NewString()
		}
		if seen[def.ID] {
			r.logger.WithField("job_id", def.ID).Warn("Duplicate job id in job table")
		}
		seen[def.ID] = true

		if !def.IsEnabled() {
			r.logger.Infof("Skipping disabled job: %s", def.Name)
			loaded = append(loaded, def)
			continue
		}

		if def.NextRun == "" {
			if def.Schedule == "" {
				return fmt.Errorf("job %s: %w", def.Name, ErrMissingSchedule)
			}
			if _, err := r.schedule(def.Schedule); err != nil {
				return fmt.Errorf("job %s: %w", def.Name, err)
			}
		}

		r.logger.WithFields(logrus.Fields{
			"job_id":   def.ID,
			"job_name": def.Name,
			"schedule": def.Schedule,
			"next_run": def.NextRun,
			"category": def.Category,
		}).Info("Job registered")

		loaded = append(loaded, def)
	}

	r.mu.Lock()
	r.defs = loaded
	r.mu.Unlock()

	return nil
}

// Definitions returns the loaded job table, disabled entries included.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Definition(nil), r.defs...)
}

// Jobs returns the enabled jobs with their next run after now.
func (r *Registry) Jobs(now time.Time) []types.Job {
	r.mu.RLock()
	defs := append([]Definition(nil), r.defs...)
	r.mu.RUnlock()

	jobs := make([]types.Job, 0, len(defs))
	for _, def := range defs {
		if !def.IsEnabled() {
			continue
		}

		job := types.Job{
			ID:       def.ID,
			Name:     def.Name,
			Category: def.Category,
			NextRun:  def.NextRun,
		}

		if job.NextRun == "" {
			next, err := r.NextRun(def.Schedule, now)
			if err != nil {
				r.logger.WithFields(logrus.Fields{
					"job_id": def.ID,
					"error":  err,
				}).Warn("Failed to compute next run, skipping job")
				continue
			}
			job.NextRun = next.Format(time.RFC3339)
		}

		jobs = append(jobs, job)
	}

	return jobs
}

// NextRun returns the first activation of expr strictly after now, in Berlin
// time unless expr carries its own CRON_TZ.
func (r *Registry) NextRun(expr string, now time.Time) (time.Time, error) {
	sched, err := r.schedule(expr)
	if err != nil {
		return time.Time{}, err
	}

	next := sched.Next(now.In(utils.Berlin))
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q never fires", ErrInvalidSchedule, expr)
	}
	return next.In(utils.Berlin), nil
}

func (r *Registry) schedule(expr string) (cron.Schedule, error) {
	key := fmt.Sprintf(scheduleCacheKey, expr)
	if cached, found := r.cache.Get(key); found {
		return cached.(cron.Schedule), nil
	}

	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, expr, err)
	}

	r.cache.SetDefault(key, sched)
	return sched, nil
}
