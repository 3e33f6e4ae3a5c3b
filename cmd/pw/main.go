package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/primewatch/primewatch/internal/history"
	"github.com/primewatch/primewatch/pkg/config"
	"github.com/primewatch/primewatch/pkg/debug"
	"github.com/primewatch/primewatch/pkg/ui"
	"github.com/primewatch/primewatch/pkg/version"
	"github.com/primewatch/primewatch/pkg/watcher"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		cpuProfile  = flag.String("cpu-profile", "", "write a CPU profile to the given path")
		configPath  = flag.String("config", "", "config file path (default: XDG config dir)")
		robotLimit  = flag.Int("robot", 0, "run one search headlessly, streaming NDJSON events to stdout")
		exportPath  = flag.String("export-svg", "", "with --robot: also write a prime growth chart SVG")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pw %s\n", version.Version)
		return
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pw: cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "pw: cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pw: config: %v\n", err)
		os.Exit(1)
	}

	if *robotLimit > 0 {
		if err := runRobot(os.Stdout, cfg, *robotLimit, *exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "pw: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *exportPath != "" {
		fmt.Fprintln(os.Stderr, "pw: --export-svg requires --robot")
		os.Exit(2)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "pw: interactive mode needs a terminal; use --robot for scripted runs")
		os.Exit(1)
	}

	var store *history.Store
	if cfg.HistoryEnabled() {
		store, err = history.Open(cfg.HistoryPath())
		if err != nil {
			// History is an extra; run without it.
			debug.Log("main: history disabled: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	var cfgWatcher *watcher.Watcher
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		cfgWatcher, err = watcher.New(cfgPath)
		if err == nil {
			if err := cfgWatcher.Start(); err != nil {
				cfgWatcher = nil
			} else {
				defer cfgWatcher.Stop()
			}
		}
	}

	m := ui.NewModel(ui.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		Store:      store,
		Watcher:    cfgWatcher,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pw: %v\n", err)
		os.Exit(1)
	}
}
