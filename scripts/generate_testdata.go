// +build ignore

// generate_testdata.go creates standard directory trees for benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//   tests/testdata/benchmark/small/   (100 files)
//   tests/testdata/benchmark/medium/  (1000 files)
//   tests/testdata/benchmark/large/   (5000 files)
//   tests/testdata/benchmark/huge/    (20000 files)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/canopy/pkg/testutil"
)

type datasetSpec struct {
	name string
	size int
	desc string
}

var datasets = []datasetSpec{
	{"small", 100, "100 files - shallow tree, few directories"},
	{"medium", 1000, "1000 files - mixed depth"},
	{"large", 5000, "5000 files - deep nesting"},
	{"huge", 20000, "20000 files - stress layout"},
}

func main() {
	outputDir := "tests/testdata/benchmark"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d files)...\n", ds.name, ds.size)

		cfg := testutil.GeneratorConfig{
			Seed:        int64(ds.size), // Reproducible per-size
			MaxDepth:    depthFor(ds.size),
			MaxChildren: 12,
			DirRatio:    0.3,
		}

		gen := testutil.New(cfg)
		paths := gen.Paths(ds.size)

		outputPath := filepath.Join(outputDir, ds.name)
		if err := os.RemoveAll(outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to clear %s: %v\n", outputPath, err)
			os.Exit(1)
		}
		if err := testutil.Write(outputPath, paths); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d files) - %s\n", outputPath, len(paths), ds.desc)
	}

	fmt.Println("\nDone! Test datasets created in", outputDir)
}

func depthFor(size int) int {
	// Deeper trees for bigger datasets so directory fan-out stays sane.
	switch {
	case size <= 100:
		return 3
	case size <= 1000:
		return 5
	case size <= 5000:
		return 7
	default:
		return 9
	}
}
