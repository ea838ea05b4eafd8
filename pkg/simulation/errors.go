package simulation

import "fmt"

// ConfigParseError reports a configuration document that could not be decoded
// into a mapping. For a module's embedded defaults this is a defect in the
// module itself, not a user error.
type ConfigParseError struct {
	Module string
	Err    error
}

func (e *ConfigParseError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("failed to parse configuration: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse configuration for %s: %v", e.Module, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// InvalidParameterError reports a parameter outside its valid domain
type InvalidParameterError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// ExecutionError reports a failure of the simulation work itself
type ExecutionError struct {
	Module string
	Name   string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s run %q failed: %v", e.Module, e.Name, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
