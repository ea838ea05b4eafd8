package utils

import (
	"fmt"

	"github.com/picogrid/ctwrap/pkg/simulation"
)

// ModuleInfo contains information about a registered module
type ModuleInfo struct {
	Name string
	Spec simulation.ModuleSpec
}

// DescribeModules returns the spec of every module in the registry, sorted by name
func DescribeModules(registry *simulation.Registry) ([]ModuleInfo, error) {
	names := registry.List()
	infos := make([]ModuleInfo, 0, len(names))

	for _, name := range names {
		m, err := registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load module %s: %w", name, err)
		}
		infos = append(infos, ModuleInfo{Name: name, Spec: m.Spec()})
	}

	return infos, nil
}
