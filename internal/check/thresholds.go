package check

import "errors"

// Direction states which way a threshold pair must be ordered.
type Direction int

const (
	// Ascending is for usage-style checks where higher is worse, so the
	// warning threshold must sit below the critical one.
	Ascending Direction = iota
	// Descending is for wearout-style checks where lower is worse.
	Descending
)

// Thresholds is the warning/critical pair supplied on the command line.
type Thresholds struct {
	Warning  int
	Critical int
}

// Validate checks the ordering of the pair for the given direction.
func (t Thresholds) Validate(dir Direction) error {
	switch dir {
	case Ascending:
		if t.Warning >= t.Critical {
			return errors.New("--warning threshold must be lower then --critical threshold")
		}
	case Descending:
		if t.Critical >= t.Warning {
			return errors.New("--warning threshold must be higher then --critical threshold")
		}
	}
	return nil
}
