package template

import (
	"fmt"
	"time"

	"github.com/picogrid/ctwrap/pkg/simulation"
)

// Config holds the validated parameters of the template module
type Config struct {
	Sleep float64 // seconds
}

// Duration returns Sleep as a time.Duration, saturated at the longest
// representable duration
func (c *Config) Duration() time.Duration {
	return simulation.SecondsToDuration(c.Sleep)
}

// ValidateAndParse validates the raw parameters against the module spec and
// returns a typed Config. Undeclared keys are ignored.
func ValidateAndParse(params simulation.Config) (*Config, error) {
	values, err := simulation.ValidateParameters(spec, params)
	if err != nil {
		return nil, err
	}

	sleep, ok := values["sleep"].(float64)
	if !ok {
		return nil, fmt.Errorf("sleep resolved to %T, want float64", values["sleep"])
	}

	return &Config{Sleep: sleep}, nil
}
