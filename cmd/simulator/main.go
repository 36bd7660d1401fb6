package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var (
	serverURL   = flag.String("server", "http://localhost:8080", "Concierge API base URL")
	sessionID   = flag.String("session", "", "Session ID to reuse (empty lets the server assign one)")
	scenario    = flag.String("scenario", "room-booking", "Scripted scenario: room-booking, dining, cancellation, multilingual, interrupt")
	interactive = flag.Bool("interactive", false, "Type messages instead of running a script")
	delayMs     = flag.Int("delay", 400, "Delay between scripted turns in milliseconds")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sim := NewSimulator(&SimulatorConfig{
		ServerURL: *serverURL,
		SessionID: *sessionID,
		DelayMs:   *delayMs,
	}, logger)

	if *interactive {
		if err := sim.RunInteractive(); err != nil {
			logger.Fatal("Interactive session failed", zap.Error(err))
		}
		return
	}

	script, ok := Scenarios[*scenario]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown scenario %q. Available:\n", *scenario)
		for name := range Scenarios {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		os.Exit(1)
	}

	if err := sim.RunScript(*scenario, script); err != nil {
		logger.Fatal("Scenario failed", zap.Error(err))
	}
}
