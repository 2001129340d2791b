package algo

import "fmt"

// Params holds every scalar that configures the metric suite.
type Params struct {
	Grades      []float64
	Stops       []float64
	Beta        float64
	Gamma       float64
	LogBase     float64
	Persistence float64
	Cutoffs     []int
	Condensed   bool
}

// ValidateAscending checks that values are non-negative and in ascending order.
func ValidateAscending(name string, values []float64) error {
	for i, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: %s values must be positive (got %v)", ErrInvalidConfig, name, v)
		}
		if i > 0 && values[i-1] > v {
			return fmt.Errorf("%w: %s values must be in ascending order", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Validate rejects a configuration before any metric runs.
func Validate(p Params, xrelnum []int) error {
	if len(p.Grades) == 0 {
		return fmt.Errorf("%w: at least one gain value is required", ErrInvalidConfig)
	}
	if err := ValidateAscending("gain", p.Grades); err != nil {
		return err
	}
	if err := ValidateAscending("stop", p.Stops); err != nil {
		return err
	}
	if len(p.Stops) != len(p.Grades) {
		return fmt.Errorf("%w: %d stop values for %d gain values", ErrInvalidConfig, len(p.Stops), len(p.Grades))
	}
	if p.Beta < 0 {
		return fmt.Errorf("%w: beta must be positive (got %v)", ErrInvalidConfig, p.Beta)
	}
	if p.Gamma < 0 || p.Gamma > 1 {
		return fmt.Errorf("%w: gamma must range from 0 to 1 (got %v)", ErrInvalidConfig, p.Gamma)
	}
	if p.LogBase < 0 || (p.LogBase > 0 && p.LogBase <= 1) {
		return fmt.Errorf("%w: log base must be 0 (natural log) or greater than 1 (got %v)", ErrInvalidConfig, p.LogBase)
	}
	if p.Persistence < 0 || p.Persistence > 1 {
		return fmt.Errorf("%w: rbp persistence must range from 0 to 1 (got %v)", ErrInvalidConfig, p.Persistence)
	}
	for _, c := range p.Cutoffs {
		if c <= 0 {
			return fmt.Errorf("%w: cutoffs must be greater than 0 (got %d)", ErrInvalidConfig, c)
		}
	}
	if p.Grades[len(p.Grades)-1] == 0 {
		return fmt.Errorf("%w: the highest gain value must be greater than 0", ErrInvalidConfig)
	}
	// Not enforced: a condensed list with no judged non-relevant documents
	// (xrelnum[0] == 0) is still scored.
	relevant := 0
	for level, n := range xrelnum {
		if level > 0 {
			relevant += n
		}
	}
	if relevant == 0 {
		return ErrNoRelevant
	}
	return nil
}

// ValidateList checks that every level in list exists on the configured scale.
func ValidateList(list RankedList, numLevels int) error {
	for i, d := range list {
		if d.Grade.Judged && (d.Grade.Level < 0 || d.Grade.Level >= numLevels) {
			return fmt.Errorf("%w: L%d at rank %d (max L%d)", ErrLevelOutOfRange, d.Grade.Level, i+1, numLevels-1)
		}
	}
	return nil
}
