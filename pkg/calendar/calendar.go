package calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/category"
	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/0xPuncker/cron-dashboard/pkg/utils"
)

const (
	maxTitleLength = 1024
	eventDuration  = time.Hour
	eventLocation  = "Cron Dashboard"
)

type CalendarService struct{}

func NewCalendarService() *CalendarService {
	return &CalendarService{}
}

func (s *CalendarService) CreateEventURL(title, description string, startTime, endTime time.Time, location string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title cannot be empty")
	}

	if len(title) > maxTitleLength {
		return "", fmt.Errorf("title exceeds %d characters", maxTitleLength)
	}

	if endTime.Before(startTime) {
		return "", fmt.Errorf("end time cannot be before start time")
	}

	if startTime.Equal(endTime) {
		return "", fmt.Errorf("start time and end time cannot be the same")
	}

	start := startTime.UTC().Format("20060102T150405Z")
	end := endTime.UTC().Format("20060102T150405Z")

	u := url.URL{
		Scheme: "https",
		Host:   "calendar.google.com",
		Path:   "calendar/render",
	}

	params := url.Values{}
	params.Add("action", "TEMPLATE")
	params.Add("text", title)
	params.Add("details", description)
	params.Add("dates", fmt.Sprintf("%s/%s", start, end))
	params.Add("location", location)
	params.Add("ctz", utils.TimeZone)

	u.RawQuery = params.Encode()

	return u.String(), nil
}

// CreateJobEvent builds a one-hour event at the job's next run.
func (s *CalendarService) CreateJobEvent(job types.Job, now time.Time) (string, error) {
	if job.Name == "" {
		return "", fmt.Errorf("job name cannot be empty")
	}

	nextRun, err := utils.ParseInstant(job.NextRun)
	if err != nil {
		return "", fmt.Errorf("invalid next run for job %s: %w", job.ID, err)
	}

	if !nextRun.After(now) {
		return "", fmt.Errorf("next run cannot be in the past")
	}

	description := fmt.Sprintf("Job: %s\nID: %s\nKategorie: %s\nNächste Ausführung: %s",
		job.Name, job.ID, category.Resolve(job.Category).Label, utils.FormatInstant(nextRun))

	return s.CreateEventURL(job.Name, description, nextRun, nextRun.Add(eventDuration), eventLocation)
}
