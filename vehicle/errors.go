package vehicle

import (
	"fmt"
	"strings"

	"github.com/driftlab/vdyncore/internal/logging"
)

// ConfigError reports a problem found while constructing a Vehicle or
// resolving a named preset, naming the offending field so a caller can
// present a targeted fix rather than a bare error string.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vehicle config: %s: %s", e.Field, e.Reason)
}

// newConfigError constructs a ConfigError, matching the accumulated
// validation style used elsewhere in this module: callers gather every
// problem before returning rather than failing on the first one.
func newConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// Validate checks a Config for the invariants the core refuses to build
// without: positive mass and yaw inertia, positive wheelbase and track
// widths, a center of gravity strictly between the axles, and a positive
// tire radius. Every problem is collected before returning, mirroring
// config.Load()'s accumulated-problems style, so a caller sees the full
// list of what is wrong with a misconfigured preset at once.
func (c Config) Validate() error {
	var problems []string

	if c.Mass <= 0 {
		problems = append(problems, fmt.Sprintf("mass must be positive, got %v", c.Mass))
	}
	if c.Inertia <= 0 {
		problems = append(problems, fmt.Sprintf("inertia must be positive, got %v", c.Inertia))
	}
	if c.Wheelbase <= 0 {
		problems = append(problems, fmt.Sprintf("wheelbase must be positive, got %v", c.Wheelbase))
	}
	if c.TrackFront <= 0 {
		problems = append(problems, fmt.Sprintf("track_front must be positive, got %v", c.TrackFront))
	}
	if c.TrackRear <= 0 {
		problems = append(problems, fmt.Sprintf("track_rear must be positive, got %v", c.TrackRear))
	}
	if c.Wheelbase > 0 && (c.CGToFront <= 0 || c.CGToFront >= c.Wheelbase) {
		problems = append(problems, fmt.Sprintf("cg_to_front must lie strictly between 0 and wheelbase (%v), got %v", c.Wheelbase, c.CGToFront))
	}
	if c.TireConfig.Radius <= 0 {
		problems = append(problems, fmt.Sprintf("tire radius must be positive, got %v", c.TireConfig.Radius))
	}

	if len(problems) > 0 {
		err := newConfigError("Config", strings.Join(problems, "; "))
		logging.L().Warn("rejected invalid vehicle config", logging.String("reason", err.Reason))
		return err
	}
	return nil
}

// NewValidated constructs a Vehicle after validating Config, returning a
// *ConfigError naming every invalid field instead of building a vehicle
// that would silently misbehave. Use this at the edge where configuration
// comes from outside the program (user-supplied overrides, deserialized
// presets); New remains available for call sites that already hold a
// trusted Config, such as the embedded preset table.
func NewValidated(config Config) (*Vehicle, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return New(config), nil
}
