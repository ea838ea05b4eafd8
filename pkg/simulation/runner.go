package simulation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/picogrid/ctwrap/pkg/logger"
)

// SelfTestName is the run name used by SelfTest
const SelfTestName = "main"

// Execute runs m once under name with its default configuration overlaid by
// overrides. Errors from the module are returned unmodified.
func Execute(ctx context.Context, m Module, name string, overrides Config) (Result, error) {
	defaults, err := m.Default()
	if err != nil {
		return nil, err
	}

	cfg := Merge(defaults, overrides)

	log := logger.WithFields(map[string]interface{}{
		"module": m.Name(),
		"run_id": uuid.NewString(),
	})
	log.Debugf("running %q with %v", name, cfg)

	result, err := m.Run(ctx, name, cfg)
	if err != nil {
		log.Debugf("run %q failed: %v", name, err)
		return nil, err
	}

	if _, ok := result[name]; !ok || len(result) != 1 {
		return nil, &ExecutionError{
			Module: m.Name(),
			Name:   name,
			Err:    fmt.Errorf("module returned %d tables, want exactly one keyed %q", len(result), name),
		}
	}

	log.Debugf("run %q produced %d row(s)", name, result[name].Len())
	return result, nil
}

// SelfTest runs m once as a smoke test: it loads the module defaults and runs
// them under SelfTestName. Nothing calls it implicitly.
func SelfTest(ctx context.Context, m Module) (Result, error) {
	defaults, err := m.Default()
	if err != nil {
		return nil, err
	}
	return m.Run(ctx, SelfTestName, defaults)
}
