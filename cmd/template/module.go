// Package template is the reference simulation module. Its unit of work is a
// sleep of configurable length, standing in for one simulation instance.
package template

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/picogrid/ctwrap/pkg/logger"
	"github.com/picogrid/ctwrap/pkg/simulation"
)

// ModuleName is the name the module registers under
const ModuleName = "template"

var (
	//go:embed defaults.yaml
	defaultsDoc []byte

	//go:embed simulation.yaml
	specDoc []byte

	spec = mustParseSpec(specDoc)
)

func mustParseSpec(data []byte) simulation.ModuleSpec {
	s, err := simulation.ParseSpec(data)
	if err != nil {
		panic(fmt.Sprintf("template: embedded simulation.yaml: %v", err))
	}
	return s
}

// Module implements simulation.Module
type Module struct{}

// New creates a new instance of the template module
func New() simulation.Module {
	return &Module{}
}

// Name returns the module name
func (m *Module) Name() string {
	return ModuleName
}

// Description returns the module description
func (m *Module) Description() string {
	return spec.Description
}

// Spec returns the module's parameter schema
func (m *Module) Spec() simulation.ModuleSpec {
	return spec
}

// Default returns the embedded default configuration
func (m *Module) Default() (simulation.Config, error) {
	cfg, err := simulation.ParseConfig(defaultsDoc)
	if err != nil {
		var perr *simulation.ConfigParseError
		if errors.As(err, &perr) {
			perr.Module = ModuleName
		}
		return nil, err
	}
	return cfg, nil
}

// Run blocks for the configured sleep and records it in a one-row table
func (m *Module) Run(ctx context.Context, name string, params simulation.Config) (simulation.Result, error) {
	if name == "" {
		return nil, &simulation.InvalidParameterError{Param: "name", Value: name, Reason: "must not be empty"}
	}

	cfg, err := ValidateAndParse(params)
	if err != nil {
		return nil, err
	}

	logger.Progressf("    - `%s`: sleeping for %v seconds ...", ModuleName, cfg.Sleep)

	if err := sleep(ctx, cfg.Duration()); err != nil {
		return nil, &simulation.ExecutionError{Module: ModuleName, Name: name, Err: err}
	}

	table, err := simulation.NewTable("sleep")
	if err != nil {
		return nil, &simulation.ExecutionError{Module: ModuleName, Name: name, Err: err}
	}
	if err := table.AddRow(cfg.Sleep); err != nil {
		return nil, &simulation.ExecutionError{Module: ModuleName, Name: name, Err: err}
	}

	return simulation.Result{name: table}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// init registers the module
func init() {
	if err := simulation.DefaultRegistry.Register(ModuleName, New); err != nil {
		logger.Errorf("Failed to register module: %v", err)
	}
}
