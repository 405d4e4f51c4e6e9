package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/pipenet/pkg/config"
	"github.com/dd0wney/pipenet/pkg/logging"
	"github.com/dd0wney/pipenet/pkg/placement"
	"github.com/dd0wney/pipenet/pkg/pubsub"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file (scenario is loaded into the editor)")
		width      = flag.Int("width", 32, "Grid width in cells")
		height     = flag.Int("height", 16, "Grid height in cells")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Logs would tear the alternate screen, so they go nowhere here.
	ctrl := placement.New(placement.Config{
		Logger:        logging.NewNopLogger(),
		Bus:           pubsub.NewBus(cfg.Events.Buffer),
		DefaultVolume: cfg.Segments.DefaultVolume,
	})
	defer ctrl.Close()

	if cfg.Scenario != nil {
		if _, err := ctrl.RunScenario(cfg.Scenario); err != nil {
			log.Fatalf("Failed to run scenario: %v", err)
		}
	}

	p := tea.NewProgram(newModel(ctrl, *width, *height), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
