package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/canopy/pkg/config"
	"github.com/vanderheijden86/canopy/pkg/debug"
	"github.com/vanderheijden86/canopy/pkg/fsx"
	"github.com/vanderheijden86/canopy/pkg/ignore"
	"github.com/vanderheijden86/canopy/pkg/metrics"
	"github.com/vanderheijden86/canopy/pkg/tree"
	"github.com/vanderheijden86/canopy/pkg/ui"
	"github.com/vanderheijden86/canopy/pkg/version"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	noGitignore := flag.Bool("no-gitignore", false, "Disable .gitignore filtering")
	hidden := flag.Bool("hidden", false, "Show hidden entries")
	printFlag := flag.Bool("print", false, "Non-interactive: print the visible tree as JSON and exit")
	findFlag := flag.String("find", "", "With --print: run a name search first and report matches")
	depthFlag := flag.Int("depth", 1, "With --print: pre-expand directories up to this depth")
	configPath := flag.String("config", "", "Explicit config file path")
	flag.Parse()

	if *help {
		fmt.Println("Usage: canopy [options] [root]")
		fmt.Println("\nA terminal file-tree browser. root defaults to the current directory.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("canopy %s\n", version.Version)
		os.Exit(0)
	}

	// Config file is advisory: a missing or broken one means defaults.
	var cfg config.Config
	var cfgErr error
	if *configPath != "" {
		cfg, cfgErr = config.LoadFrom(*configPath)
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		debug.Log("config load: %v", cfgErr)
		cfg = config.DefaultConfig()
	}
	if *hidden {
		cfg.ShowHidden = true
	}
	if *noGitignore {
		cfg.UseGitignore = false
	}

	root := flag.Arg(0)
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving root: %v\n", err)
		os.Exit(1)
	}
	info, err := os.Stat(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading root: %v\n", err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", root)
		os.Exit(1)
	}

	lister := fsx.NewLister(cfg.ShowHidden)
	oracle := buildOracle(cfg, root)

	tr, err := tree.New(tree.Config{RootPath: root, Enumerator: lister, Oracle: oracle})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building tree: %v\n", err)
		os.Exit(1)
	}

	if *printFlag {
		out := buildPrintOutput(tr, root, *depthFlag, *findFlag)
		if err := writePrintOutput(os.Stdout, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		dumpMetrics()
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal (use --print for machine-readable output)")
		os.Exit(1)
	}

	// Warm the listing cache below the root while the user looks at the
	// first screen. Cancelled with the program.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.PrewarmDepth > 0 {
		go func() {
			_ = fsx.Prewarm(ctx, lister, root, cfg.PrewarmDepth)
		}()
	}

	m := ui.NewModel(ui.Options{
		Tree:     tr,
		Lister:   lister,
		Oracle:   oracle,
		Config:   cfg,
		RootPath: root,
	})

	final, err := runTUIProgram(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running canopy: %v\n", err)
		os.Exit(1)
	}
	dumpMetrics()

	// A file picked with enter lands on stdout, where shells can take it.
	if final.SelectedPath != "" {
		fmt.Println(final.SelectedPath)
	}
}

// buildOracle wires ignore filtering when it is enabled and the root
// sits inside a git repository. Every failure path degrades to nil, an
// unfiltered tree.
func buildOracle(cfg config.Config, root string) tree.Oracle {
	if !cfg.UseGitignore {
		return nil
	}
	matcher, err := ignore.Detect(root)
	if err != nil {
		if !errors.Is(err, ignore.ErrNoRepository) {
			debug.Log("ignore detect: %v", err)
		}
		return nil
	}
	debug.Log("ignore filtering against repo %s", matcher.RepoRoot())
	return matcher
}

func runTUIProgram(m ui.Model) (ui.Model, error) {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set CANOPY_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("CANOPY_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			err = nil
		}
	}
	if err != nil {
		return m, err
	}
	if fm, ok := final.(ui.Model); ok {
		return fm, nil
	}
	return m, nil
}

// dumpMetrics writes collected timings to the debug log, which is a
// no-op unless CANOPY_DEBUG is on.
func dumpMetrics() {
	if !debug.Enabled() || !metrics.Enabled() {
		return
	}
	debug.Section("timings")
	for _, st := range metrics.AllTimingStats() {
		debug.Log("%s: n=%d avg=%.2fms max=%.2fms", st.Name, st.Count, st.AvgMs, st.MaxMs)
	}
}
