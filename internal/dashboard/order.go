package dashboard

import (
	"sort"
	"time"

	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/0xPuncker/cron-dashboard/pkg/utils"
)

// SortByNextRun returns a copy of jobs ordered by ascending next run.
// Equal instants keep their input order; unparsable next runs go last.
func SortByNextRun(jobs []types.Job) []types.Job {
	type keyed struct {
		job   types.Job
		at    time.Time
		valid bool
	}

	items := make([]keyed, len(jobs))
	for i, job := range jobs {
		at, err := utils.ParseInstant(job.NextRun)
		items[i] = keyed{job: job, at: at, valid: err == nil}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return false
		}
		return a.at.Before(b.at)
	})

	sorted := make([]types.Job, len(items))
	for i, item := range items {
		sorted[i] = item.job
	}
	return sorted
}
