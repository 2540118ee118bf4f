// Spyglass - incremental search for an inventory backend, in the terminal.
//
// The app is a thin shell around the typeahead widget: keystrokes are
// debounced, queries hit the backend's JSON search API, and grouped results
// render in a dropdown. Enter opens the full results page in the browser.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollowaydev/spyglass/internal/browser"
	"github.com/hollowaydev/spyglass/internal/config"
	"github.com/hollowaydev/spyglass/internal/history"
	"github.com/hollowaydev/spyglass/internal/logging"
	"github.com/hollowaydev/spyglass/internal/search"
	"github.com/hollowaydev/spyglass/internal/ui"
	"github.com/hollowaydev/spyglass/internal/ui/typeahead"
)

func main() {
	searchURL := flag.String("search-url", "", "search API endpoint (overrides config and env)")
	resultsURL := flag.String("results-url", "", "full results page URL (overrides config and env)")
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Initialize logging
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *searchURL != "" {
		cfg.Server.SearchURL = *searchURL
	}
	if *resultsURL != "" {
		cfg.Server.ResultsURL = *resultsURL
	}

	logging.Info("spyglass starting",
		"configured", cfg.Enabled(),
		"debounce_ms", cfg.Search.DebounceMs,
		"group_limit", cfg.Search.GroupLimit,
	)

	// History store. Losing it is not fatal: search still works, the
	// recent and pinned panels just stay empty.
	var hist *history.Store
	if home, err := os.UserHomeDir(); err == nil {
		dataDir := filepath.Join(home, ".spyglass")
		if err := os.MkdirAll(dataDir, 0755); err == nil {
			hist, err = history.NewStore(filepath.Join(dataDir, "spyglass.db"))
			if err != nil {
				logging.Warn("history unavailable", "error", err)
				hist = nil
			}
		}
	}
	if hist != nil {
		defer hist.Close()
	}

	var searcher typeahead.Searcher
	if cfg.Enabled() {
		client := search.NewClient(cfg.Server.SearchURL, cfg.RequestTimeout(), cfg.CacheTTL())
		searcher = client.Search
	} else {
		logging.Warn("search endpoints not configured; widget disabled")
	}

	app := ui.New(cfg, searcher, browser.Open, hist)

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logging.Error("Application error", "error", err)
		fatal("Error: %v", err)
	}

	logging.Info("spyglass exiting normally")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.Error(msg)
	logging.Close()
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
