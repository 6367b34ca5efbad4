package truemapper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOptionsFromYAML(t *testing.T) {
	data := []byte(`
detect_cycles: false
max_depth: 16
propagate_nulls: true
worker_count: 3
`)
	o, err := OptionsFromYAML(data)
	if err != nil {
		t.Fatalf("OptionsFromYAML() error = %v", err)
	}

	if o.DetectCycles {
		t.Error("DetectCycles = true, want false")
	}
	if o.MaxDepth != 16 {
		t.Errorf("MaxDepth = %d, want 16", o.MaxDepth)
	}
	if !o.PropagateNulls {
		t.Error("PropagateNulls = false, want true")
	}
	if o.WorkerCount != 3 {
		t.Errorf("WorkerCount = %d, want 3", o.WorkerCount)
	}
	if !o.CollectMetrics {
		t.Error("CollectMetrics = false, want default true for absent key")
	}
}

func TestOptionsFromYAMLEmpty(t *testing.T) {
	o, err := OptionsFromYAML(nil)
	if err != nil {
		t.Fatalf("OptionsFromYAML() error = %v", err)
	}
	if *o != *DefaultOptions() {
		t.Errorf("empty input = %+v, want defaults %+v", o, DefaultOptions())
	}
}

func TestOptionsFromYAMLInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"malformed", "detect_cycles: ["},
		{"zero depth", "max_depth: 0"},
		{"negative depth", "max_depth: -3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := OptionsFromYAML([]byte(tc.data)); err == nil {
				t.Error("OptionsFromYAML() error = nil, want error")
			}
		})
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("max_depth: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}
	if o.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5", o.MaxDepth)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadOptions() error = nil, want error")
	}
}
