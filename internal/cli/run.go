package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"countrypick/internal/api"
	"countrypick/internal/config"
	"countrypick/internal/eventbus"
	"countrypick/internal/i18n"
	"countrypick/internal/ui"
)

// EnvE2E makes the program announce readiness for the PTY tests
const EnvE2E = "COUNTRYPICK_E2E_TEST"

func run(ctx context.Context, out io.Writer, cfg *config.Config, printSelection bool) error {
	closeLog := setupLogging(cfg.Log.File, os.Stderr)
	defer closeLog()

	i18n.Init(cfg.UI.Language)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	client := api.NewClient(api.ClientConfig{
		URL:     cfg.API.URL,
		Timeout: cfg.API.Timeout.Duration,
	})
	log.Printf("countrypick %s: language %s, endpoint %q", version, i18n.Language(), client.URL())

	model := ui.NewModel(ctx, bus, cfg, client)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, progOpts...)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 16)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	subscribe(bus, forwardEvent)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if os.Getenv(EnvE2E) == "1" {
		fmt.Fprintln(out, "__READY__")
	}

	log.Printf("Starting UI...")
	_, err := p.Run()
	// no handler may forward once the channel is closed
	bus.Close()
	close(eventChan)
	if err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("failed to run program: %w", err)
	}
	log.Printf("UI exited normally")

	if printSelection {
		writeSelections(out, model.Selections())
	}
	return nil
}

// subscribe logs what the cards report and forwards load failures to the UI
func subscribe(bus eventbus.EventBus, forward func(eventbus.DomainEvent)) {
	bus.Subscribe(eventbus.EventCountriesLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CountriesLoadedEvent); ok && event.Skipped > 0 {
			log.Printf("%s card: %d records skipped", event.Card, event.Skipped)
		}
	})
	bus.Subscribe(eventbus.EventCountriesLoadFailed, func(e eventbus.DomainEvent) {
		forward(e)
	})
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			log.Printf("%s card selection: %s", event.Card, strings.Join(event.Names(), ", "))
		}
	})
}

func writeSelections(out io.Writer, selections []ui.Selection) {
	for _, s := range selections {
		names := make([]string, 0, len(s.Records))
		for _, r := range s.Records {
			names = append(names, r.Name)
		}
		list := strings.Join(names, ", ")
		if len(names) == 0 {
			list = i18n.T("exit.none")
		}
		fmt.Fprintf(out, "%s: %s\n", s.Label, list)
	}
}

// setupLogging sends the standard logger to path. The terminal belongs to
// the UI, so without a file nothing is logged. A file that cannot be opened
// is reported on errOut before the UI takes over.
func setupLogging(path string, errOut io.Writer) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(errOut, "Could not open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() {
		log.SetOutput(os.Stderr)
		logFile.Close()
	}
}
