package simulation

import (
	"context"
)

// Module defines the contract every simulation module implements
type Module interface {
	// Name returns the name the module is registered under
	Name() string

	// Description returns a brief description of what the module simulates
	Description() string

	// Spec returns the module's declared parameter schema
	Spec() ModuleSpec

	// Default returns the module's default configuration, parsed from the
	// document embedded in the module. It performs no I/O.
	Default() (Config, error)

	// Run executes a single simulation instance and blocks until it is done.
	// The returned Result holds exactly one table, keyed by name.
	Run(ctx context.Context, name string, cfg Config) (Result, error)
}

// MustDefault returns m.Default() and panics if the embedded document is malformed
func MustDefault(m Module) Config {
	cfg, err := m.Default()
	if err != nil {
		panic(err)
	}
	return cfg
}
