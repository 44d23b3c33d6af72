package schedule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is one entry of the job table.
type Definition struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Category    string `yaml:"category" json:"category"`
	Schedule    string `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	NextRun     string `yaml:"next_run,omitempty" json:"next_run,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// IsEnabled treats a missing enabled flag as true.
func (d Definition) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

type jobTable struct {
	Jobs []Definition `yaml:"jobs"`
}

// LoadDefinitions reads the YAML job table at path.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var table jobTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file: %w", err)
	}

	return table.Jobs, nil
}
