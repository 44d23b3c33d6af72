package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/sirupsen/logrus"
)

const jobsPath = "/api/jobs"

// Client fetches the job set from a feed endpoint.
type Client struct {
	logger  *logrus.Logger
	client  *http.Client
	baseURL string
}

func NewClient(logger *logrus.Logger, baseURL string) *Client {
	return &Client{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// URL is the feed endpoint the client reads from.
func (c *Client) URL() string {
	return c.baseURL + jobsPath
}

// Load fetches the job set once. Any failure yields an empty set.
func (c *Client) Load(ctx context.Context) []types.Job {
	jobs, err := c.Fetch(ctx)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"url":   c.URL(),
			"error": err,
		}).Warn("Failed to load jobs, showing empty dashboard")
		return []types.Job{}
	}

	c.logger.WithFields(logrus.Fields{
		"url":  c.URL(),
		"jobs": len(jobs),
	}).Info("Loaded jobs")
	return jobs
}

// Fetch performs the request and reports every failure.
func (c *Client) Fetch(ctx context.Context) ([]types.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned non-2xx status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		c.logger.WithFields(logrus.Fields{
			"url":  c.URL(),
			"body": string(body[:min(len(body), 200)]),
		}).Debug("Failed to parse feed response")
		return nil, fmt.Errorf("failed to parse feed response: %w", err)
	}

	// records are decoded one by one so a malformed record cannot empty the set
	jobs := make([]types.Job, 0, len(records))
	for i, record := range records {
		var job types.Job
		if err := json.Unmarshal(record, &job); err != nil {
			c.logger.WithFields(logrus.Fields{
				"index": i,
				"error": err,
			}).Debug("Feed record is not an object, keeping it blank")
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}
