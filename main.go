package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"formdeck/internal/catalog"
	"formdeck/internal/config"
	"formdeck/internal/eventbus"
	"formdeck/internal/store"
	"formdeck/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, catalogPath, logPath string
	flag.StringVar(&configPath, "config", config.FileName, "Path to the TOML config file")
	flag.StringVar(&configPath, "c", config.FileName, "Path to the TOML config file (shorthand)")
	flag.StringVar(&catalogPath, "catalog", "", "YAML place catalog (overrides the config file)")
	flag.StringVar(&logPath, "log", "formdeck.log", "Log file")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Forward every domain event to the UI's event log, starting with config loading
	forwarder := newEventForwarder()
	for _, t := range eventbus.AllEventTypes {
		bus.Subscribe(t, forwarder.forward)
	}

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg := loadOrCreateConfig(configSvc, configPath)
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	places, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	cat, err := catalog.New(places, catalog.Options{
		Latency:    cfg.Catalog.Latency(),
		RatePerSec: cfg.Catalog.RatePerSec,
		Burst:      cfg.Catalog.Burst,
		Fuzzy:      cfg.Catalog.Fuzzy,
		MaxResults: cfg.Autocomplete.MaxResults,
	})
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Catalog ready with %d places", cat.Len())

	// Create UI model
	uiModel, err := ui.NewModel(bus, cfg, cat, store.NewMemoryEntryStore())
	if err != nil {
		fmt.Printf("Error creating form: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)
	forwarder.attach(p.Send, func(msg tea.Msg) { uiModel.Update(msg) })

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(configSvc config.ConfigService, path string) *config.Config {
	_, statErr := os.Stat(path)

	cfg, err := configSvc.Load()
	if err != nil {
		// Keep the broken file for the user to fix
		log.Printf("Failed to load config %s: %v, using defaults", path, err)
		return config.DefaultConfig()
	}
	if statErr == nil {
		log.Printf("Loaded config from %s", path)
		return cfg
	}
	if !errors.Is(statErr, os.ErrNotExist) {
		log.Printf("Cannot stat config %s: %v, using defaults", path, statErr)
		return cfg
	}

	log.Printf("Creating new config at %s", path)
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg
}

// eventForwarder hands bus events to the program. Events published before the
// program exists are held and replayed into the model when it is attached.
type eventForwarder struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

func newEventForwarder() *eventForwarder {
	return &eventForwarder{}
}

func (f *eventForwarder) forward(e eventbus.DomainEvent) {
	msg := ui.EventMsg{Event: e}

	f.mu.Lock()
	send := f.send
	if send == nil {
		f.pending = append(f.pending, msg)
	}
	f.mu.Unlock()

	if send != nil {
		send(msg)
	}
}

// attach replays the held events through replay and sends later ones with send
func (f *eventForwarder) attach(send func(tea.Msg), replay func(tea.Msg)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, msg := range f.pending {
		replay(msg)
	}
	f.pending = nil
	f.send = send
}
