package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/config"
	"github.com/skarby/dirigera-tui/internal/provision"
	"github.com/skarby/dirigera-tui/internal/tui"
)

func main() {
	demoMode := flag.Bool("demo", os.Getenv("DIRIGERA_DEMO") != "", "run against a built-in demo hub")
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	cleanup := flag.Bool("cleanup", false, "delete all provisioned event scenes and exit")
	provisionAll := flag.Bool("provision-all", false, "provision event scenes for every controller and exit")
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *cleanup || *provisionAll {
		if err := runHeadless(cfg, *demoMode, *cleanup, *provisionAll); err != nil {
			color.Red("✗ %v", err)
			os.Exit(1)
		}
		return
	}

	if *demoMode {
		fmt.Fprintln(os.Stderr, "[dirigera] Demo mode enabled")
	}

	model := tui.NewModel(cfg, *demoMode)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless executes the scripted provisioning modes without the TUI
func runHeadless(cfg *config.Config, demo, cleanup, provisionAll bool) error {
	ctx := context.Background()

	var hub api.HubClient
	if demo {
		hub = api.NewDemoHub()
	} else {
		hubCfg, err := cfg.GetLastHub()
		if err != nil {
			return fmt.Errorf("no paired hub, run the TUI to pair first: %w", err)
		}
		hub = api.NewDirigeraHub(hubCfg.Host, hubCfg.Token, hubCfg.HubID)
	}

	p := provision.New(hub)

	if cleanup {
		deleted, err := p.DeprovisionAll(ctx)
		if err != nil {
			return err
		}
		color.Green("✓ deleted %d event scenes", deleted)
		return nil
	}

	rooms, _, err := hub.FetchAll(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, room := range rooms {
		for _, c := range room.Controllers {
			if err := p.Provision(ctx, c.ID, c.ClickPatterns, c.ButtonCount); err != nil {
				return fmt.Errorf("controller %s: %w", c.ID, err)
			}
			color.Cyan("provisioned %s (%s, %d buttons)", c.Name, c.ID, c.ButtonCount)
			total++
		}
	}
	if provisionAll && total == 0 {
		color.Yellow("no controllers found")
		return nil
	}
	color.Green("✓ provisioned %d controllers", total)
	return nil
}
