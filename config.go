package truemapper

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// optionsFile is the YAML form of Options. Pointer fields distinguish an
// absent key from an explicit zero so that absent keys keep their defaults.
type optionsFile struct {
	DetectCycles   *bool `yaml:"detect_cycles"`
	MaxDepth       *int  `yaml:"max_depth"`
	PropagateNulls *bool `yaml:"propagate_nulls"`
	CollectMetrics *bool `yaml:"collect_metrics"`
	WorkerCount    *int  `yaml:"worker_count"`
	ShapeCacheSize *int  `yaml:"shape_cache_size"`
}

// OptionsFromYAML parses Options from YAML, starting from DefaultOptions.
func OptionsFromYAML(data []byte) (*Options, error) {
	var f optionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("truemapper: parsing options: %w", err)
	}

	o := DefaultOptions()
	if f.DetectCycles != nil {
		o.DetectCycles = *f.DetectCycles
	}
	if f.MaxDepth != nil {
		if *f.MaxDepth < 1 {
			return nil, fmt.Errorf("truemapper: max_depth must be >= 1, got %d", *f.MaxDepth)
		}
		o.MaxDepth = *f.MaxDepth
	}
	if f.PropagateNulls != nil {
		o.PropagateNulls = *f.PropagateNulls
	}
	if f.CollectMetrics != nil {
		o.CollectMetrics = *f.CollectMetrics
	}
	if f.WorkerCount != nil && *f.WorkerCount > 0 {
		o.WorkerCount = *f.WorkerCount
	}
	if f.ShapeCacheSize != nil && *f.ShapeCacheSize > 0 {
		o.ShapeCacheSize = *f.ShapeCacheSize
	}
	return o, nil
}

// LoadOptions reads Options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("truemapper: reading options file: %w", err)
	}
	return OptionsFromYAML(data)
}
