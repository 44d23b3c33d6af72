package types

import (
	"bytes"
	"context"
	"encoding/json"
)

// Job is a scheduled job as reported by the feed endpoint.
type Job struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NextRun  string `json:"nextRun"`
	Category string `json:"category"`
}

// UnmarshalJSON accepts any JSON value in a field. Feeds are not validated,
// so a numeric id or a boolean category is kept as its literal text.
func (j *Job) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*j = Job{
		ID:       text(fields["id"]),
		Name:     text(fields["name"]),
		NextRun:  text(fields["nextRun"]),
		Category: text(fields["category"]),
	}
	return nil
}

// text unquotes strings, maps null and absent values to "" and keeps
// everything else verbatim.
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// JobLoader returns the current job set. Implementations never fail: a set
// that cannot be obtained is reported as empty.
type JobLoader interface {
	Load(ctx context.Context) []Job
}
