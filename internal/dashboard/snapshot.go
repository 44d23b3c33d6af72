package dashboard

import (
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/category"
	"github.com/0xPuncker/cron-dashboard/pkg/calendar"
	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/0xPuncker/cron-dashboard/pkg/utils"
	"github.com/samber/lo"
)

// Card is one job as presented on the dashboard.
type Card struct {
	Job         types.Job
	Category    category.Descriptor
	NextRun     string
	Countdown   string
	CalendarURL string
}

// Snapshot is everything needed to draw the dashboard at one instant.
type Snapshot struct {
	Now   time.Time
	Cards []Card
}

// BuildSnapshot derives cards from jobs that are already in display order.
func BuildSnapshot(sorted []types.Job, now time.Time) Snapshot {
	calendars := calendar.NewCalendarService()

	cards := lo.Map(sorted, func(job types.Job, _ int) Card {
		card := Card{
			Job:       job,
			Category:  category.Resolve(job.Category),
			NextRun:   utils.FormatGermanDate(job.NextRun),
			Countdown: utils.FormatCountdown(job.NextRun, now),
		}
		if url, err := calendars.CreateJobEvent(job, now); err == nil {
			card.CalendarURL = url
		}
		return card
	})

	return Snapshot{Now: now, Cards: cards}
}

// Due reports how many cards have reached their next run.
func (s Snapshot) Due() int {
	return lo.CountBy(s.Cards, func(c Card) bool {
		return c.Countdown == utils.DueNow
	})
}
