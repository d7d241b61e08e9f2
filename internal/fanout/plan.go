package fanout

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Job describes one simulated unit of work. A job sleeps, then panics if
// Panic is set, fails if Fail is set, and otherwise returns Value.
type Job struct {
	Name  string        `yaml:"name"`
	Sleep time.Duration `yaml:"sleep"`
	Fail  string        `yaml:"fail,omitempty"`
	Panic string        `yaml:"panic,omitempty"`
	Value string        `yaml:"value,omitempty"`
}

// Plan is the document read by "fanout run".
type Plan struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadPlan reads and validates a plan file.
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadingPlan, err)
	}
	defer f.Close()

	return ParsePlan(f)
}

// ParsePlan decodes and validates a YAML plan.
func ParsePlan(r io.Reader) (*Plan, error) {
	var plan Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrReadingPlan, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks that the plan has jobs with unique names and
// non-negative sleeps.
func (p *Plan) Validate() error {
	if len(p.Jobs) == 0 {
		return ErrEmptyPlan
	}

	seen := make(map[string]struct{}, len(p.Jobs))
	for i, job := range p.Jobs {
		if job.Name == "" {
			return fmt.Errorf("%w: job #%d", ErrJobName, i+1)
		}
		if _, ok := seen[job.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateJob, job.Name)
		}
		seen[job.Name] = struct{}{}
		if job.Sleep < 0 {
			return fmt.Errorf("%w: %q", ErrJobSleep, job.Name)
		}
	}
	return nil
}
