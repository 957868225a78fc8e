// Command regheap-probe drives the allocator through the literal
// end-to-end scenarios of spec.md §8 and reports pass/fail for each,
// grounded in cmd/orizon-profile's flag-based, no-subcommand-framework
// CLI shape (deleted original, kept in _examples/ as a style reference).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/regionheap/regionheap/internal/cli"
	"github.com/regionheap/regionheap/internal/diagnostics"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		showHelp    = flag.Bool("help", false, "show help information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		verbose     = flag.Bool("verbose", false, "verbose output")
		debugLog    = flag.Bool("debug", false, "enable allocator event logging")
		pageSize    = flag.Int("pagesize", 4096, "page size in bytes to request from the page provider")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Runs the region allocator's end-to-end scenarios and reports pass/fail.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		cli.PrintVersion("regheap-probe", *jsonOutput)
		os.Exit(0)
	}

	logger := cli.NewLogger(*verbose, *debugLog)

	diag := diagnostics.New()
	diag.Enable(*debugLog)

	size := uintptr(*pageSize)

	scenarios := []scenario{
		{"single-thread-lifecycle", func() error { return singleThreadLifecycle(size, diag) }},
		{"split-and-coalesce", func() error { return splitAndCoalesce(size, diag) }},
		{"segregated-search-order", func() error { return segregatedSearchOrder(size, diag) }},
		{"region-isolation", func() error { return regionIsolation(size, diag) }},
		{"region-zero-bootstrap", func() error { return regionZeroBootstrap(size, diag) }},
		{"large-request", func() error { return largeRequest(size, diag) }},
	}

	start := time.Now()

	failures := 0

	for _, s := range scenarios {
		logger.Info("running %s", s.name)

		if err := s.run(); err != nil {
			fmt.Printf("FAIL  %-28s %v\n", s.name, err)

			failures++

			continue
		}

		fmt.Printf("PASS  %-28s\n", s.name)
	}

	fmt.Printf("\n%d/%d scenarios passed (%s)\n", len(scenarios)-failures, len(scenarios), time.Since(start))

	if failures > 0 {
		cli.ExitWithError("%d scenario(s) failed", failures)
	}
}
