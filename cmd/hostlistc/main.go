// Command hostlistc compiles a configured set of filter-list sources into
// a single canonical hostlist (spec's process-level surface, §6: CLI
// entry point kept minimal, wiring the core compilation pipeline).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hostlistc/hostlistc/internal/compiler"
	"github.com/hostlistc/hostlistc/internal/config"
	"github.com/hostlistc/hostlistc/internal/diff"
	"github.com/hostlistc/hostlistc/internal/events"
	"github.com/hostlistc/hostlistc/internal/fetch"
	"github.com/hostlistc/hostlistc/internal/logging"
)

const packageVersion = "0.1.0"

func main() {
	configPath := flag.String("config", "hostlistc.yaml", "Path to the compilation configuration file")
	outputPath := flag.String("output", "", "Write the compiled list here instead of stdout")
	platform := flag.String("platform", "", "Platform identifier for !#if conditional directives")
	showMetrics := flag.Bool("metrics", false, "Print compilation metrics to stderr after compiling")
	diffAgainst := flag.String("diff-against", "", "Path to a previous compiled list; print a diff report instead of the list")
	diffFormat := flag.String("diff-format", "markdown", "Diff report format: markdown or json")
	dev := flag.Bool("dev", false, "Use human-readable development logging")
	flag.Parse()

	logger := logging.New(*dev)

	mgr := config.NewManager(*configPath)
	if err := mgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "hostlistc: %v\n", err)
		os.Exit(1)
	}
	for _, w := range mgr.Warnings() {
		logger.Warn("configuration warning", map[string]any{"detail": w})
	}

	cfg := mgr.Get()
	if *platform != "" {
		cfg.Platform = *platform
	}

	bus := events.NewBus(func(ev events.Event) {
		logger.Info("pipeline event", map[string]any{"kind": ev.Kind, "source": ev.Source, "current": ev.Current})
	}, logger)

	c := compiler.New(fetch.NewHTTPFetcher(logger), compiler.PackageInfo{Name: "hostlistc", Version: packageVersion}, logger, bus)

	result, err := c.Compile(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hostlistc: compilation failed: %v\n", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		logger.Warn("compilation warning", map[string]any{"detail": w})
	}

	if *diffAgainst != "" {
		runDiff(*diffAgainst, result.Lines, *diffFormat)
		return
	}

	output := strings.Join(result.Lines, "\n")
	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, []byte(output+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "hostlistc: writing output: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(output)
	}

	if *showMetrics {
		printMetrics(result)
	}
}

func runDiff(previousPath string, updated []string, format string) {
	prevBytes, err := os.ReadFile(previousPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hostlistc: reading diff-against file: %v\n", err)
		os.Exit(1)
	}
	original := strings.Split(string(prevBytes), "\n")

	res := diff.Compute(original, updated, diff.DefaultOptions())
	switch format {
	case "json":
		out, err := diff.RenderJSON(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hostlistc: rendering diff: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
	default:
		fmt.Print(diff.RenderMarkdown(res))
	}
}

func printMetrics(result compiler.Result) {
	data, err := json.MarshalIndent(result.Metrics, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "hostlistc: rendering metrics: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, string(data))
}
