package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Job
	}{
		{
			name:     "strings",
			input:    `{"id":"a","name":"Backup","nextRun":"2026-10-18T12:00:00Z","category":"reminder"}`,
			expected: Job{ID: "a", Name: "Backup", NextRun: "2026-10-18T12:00:00Z", Category: "reminder"},
		},
		{
			name:     "numeric id",
			input:    `{"id":42,"name":"Logs","nextRun":"2026-10-18T12:00:00Z","category":"maintenance"}`,
			expected: Job{ID: "42", Name: "Logs", NextRun: "2026-10-18T12:00:00Z", Category: "maintenance"},
		},
		{
			name:     "bool and null",
			input:    `{"id":"b","name":null,"nextRun":1.5e3,"category":true}`,
			expected: Job{ID: "b", NextRun: "1.5e3", Category: "true"},
		},
		{
			name:     "missing fields and extras",
			input:    `{"id":"c","extra":{"x":1}}`,
			expected: Job{ID: "c"},
		},
		{
			name:     "nested value kept verbatim",
			input:    `{"id":"d","category":["a","b"]}`,
			expected: Job{ID: "d", Category: `["a","b"]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var job Job
			require.NoError(t, json.Unmarshal([]byte(tt.input), &job))
			assert.Equal(t, tt.expected, job)
		})
	}
}

func TestJobUnmarshalJSONNotAnObject(t *testing.T) {
	var job Job
	assert.Error(t, json.Unmarshal([]byte(`42`), &job))
	assert.Error(t, json.Unmarshal([]byte(`"job"`), &job))
}

func TestJobMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Job{ID: "a", Name: "Backup", NextRun: "2026-10-18T12:00:00Z", Category: "reminder"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","name":"Backup","nextRun":"2026-10-18T12:00:00Z","category":"reminder"}`, string(data))
}
