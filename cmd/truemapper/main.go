// Package main implements the truemapper CLI. It feeds JSON documents
// through the mapping engine and reports per-document timing plus the
// engine's traversal metrics, which makes it handy for smoke-testing
// mapping options against real payloads.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	truemapper "github.com/iuliansilitra/TrueMapper"
	"github.com/iuliansilitra/TrueMapper/engine"
)

const usage = `truemapper - object graph mapping engine

Usage:
  truemapper [options] <file>...
  truemapper [options] -           (read from stdin)
  cat payload.json | truemapper -  (pipe input)

Examples:
  truemapper payload.json
  truemapper -depth 8 payload.json
  truemapper -config options.yaml *.json
  truemapper -output json payload.json

Options:
`

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
)

type cliConfig struct {
	ConfigFile  string
	MaxDepth    int
	NoCycles    bool
	Output      outputFormat
	Quiet       bool
	ShowVersion bool
	Help        bool
	Files       []string
}

type documentReport struct {
	Document string `json:"document"`
	OK       bool   `json:"ok"`
	Members  int    `json:"members"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

type metricsReport struct {
	Mappings    uint64 `json:"mappings"`
	AverageTime string `json:"average_time"`
	Cycles      uint64 `json:"cycles_detected"`
	Truncations uint64 `json:"depth_truncations"`
	Skipped     uint64 `json:"members_skipped"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("truemapper v%s\n", truemapper.Version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *cliConfig {
	config := &cliConfig{Output: outputText}

	var output string
	flag.StringVar(&config.ConfigFile, "config", "", "YAML options file")
	flag.IntVar(&config.MaxDepth, "depth", 0, "Override maximum traversal depth")
	flag.BoolVar(&config.NoCycles, "no-cycles", false, "Disable cycle detection")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show failures")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.EqualFold(output, "json") {
		config.Output = outputJSON
	}
	config.Files = flag.Args()
	return config
}

func run(config *cliConfig) int {
	var opts []truemapper.Option
	if config.ConfigFile != "" {
		loaded, err := truemapper.LoadOptions(config.ConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts = append(opts,
			truemapper.WithCycleDetection(loaded.DetectCycles),
			truemapper.WithMaxDepth(loaded.MaxDepth),
			truemapper.WithNullPropagation(loaded.PropagateNulls),
			truemapper.WithMetrics(loaded.CollectMetrics),
			truemapper.WithWorkerCount(loaded.WorkerCount),
			truemapper.WithShapeCacheSize(loaded.ShapeCacheSize),
		)
	}
	if config.MaxDepth > 0 {
		opts = append(opts, truemapper.WithMaxDepth(config.MaxDepth))
	}
	if config.NoCycles {
		opts = append(opts, truemapper.WithCycleDetection(false))
	}

	m := engine.New(opts...)

	hasErrors := false
	reports := make([]documentReport, 0, len(config.Files))

	for _, file := range config.Files {
		if file == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
				hasErrors = true
				continue
			}
			report := mapDocument(m, data, "stdin", config)
			reports = append(reports, report)
			hasErrors = hasErrors || !report.OK
			continue
		}

		matches, err := filepath.Glob(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern %q: %v\n", file, err)
			hasErrors = true
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", file)
			hasErrors = true
			continue
		}

		for _, match := range matches {
			data, err := os.ReadFile(match)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", match, err)
				hasErrors = true
				continue
			}
			report := mapDocument(m, data, match, config)
			reports = append(reports, report)
			hasErrors = hasErrors || !report.OK
		}
	}

	if config.Output == outputJSON {
		printJSON(m, reports)
	} else if !config.Quiet {
		printMetrics(m)
	}

	if hasErrors {
		return 1
	}
	return 0
}

// mapDocument round-trips one JSON document through the engine into a
// dynamic destination, which walks every object and array in the payload.
func mapDocument(m *engine.Mapper, data []byte, name string, config *cliConfig) documentReport {
	start := time.Now()

	var dst map[string]any
	err := m.FromJSON(context.Background(), data, &dst)
	duration := time.Since(start).Round(time.Microsecond)

	report := documentReport{
		Document: name,
		OK:       err == nil,
		Members:  len(dst),
		Duration: duration.String(),
	}
	if err != nil {
		report.Error = err.Error()
	}

	if config.Output == outputText && (!config.Quiet || err != nil) {
		if err != nil {
			fmt.Printf("== %s ==\nStatus: FAILED\n%v\n\n", name, err)
		} else {
			fmt.Printf("== %s ==\nStatus: OK\nMembers: %d, Duration: %s\n\n", name, len(dst), duration)
		}
	}
	return report
}

func printMetrics(m *engine.Mapper) {
	snap := m.Metrics().Snapshot()
	fmt.Printf("Mappings: %d, Avg: %s\n", snap.MappingsTotal, m.Metrics().AverageMappingTime())
	fmt.Printf("Cycles: %d, Truncations: %d, Skipped members: %d\n",
		snap.CyclesDetected, snap.DepthTruncations, snap.MembersSkipped)
}

func printJSON(m *engine.Mapper, reports []documentReport) {
	out := struct {
		Documents []documentReport `json:"documents"`
		Metrics   metricsReport    `json:"metrics"`
	}{
		Documents: reports,
		Metrics: metricsReport{
			Mappings:    m.Metrics().MappingsTotal(),
			AverageTime: m.Metrics().AverageMappingTime().String(),
			Cycles:      m.Metrics().CyclesDetected(),
			Truncations: m.Metrics().DepthTruncations(),
			Skipped:     m.Metrics().MembersSkipped(),
		},
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}
