package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/zorkosss/GameHub/internal/backend"
	"github.com/zorkosss/GameHub/internal/config"
	"github.com/zorkosss/GameHub/internal/domain"
	"github.com/zorkosss/GameHub/internal/library"
	"github.com/zorkosss/GameHub/internal/log"
	"github.com/zorkosss/GameHub/internal/search"
	"github.com/zorkosss/GameHub/internal/store"
	"github.com/zorkosss/GameHub/internal/tui"
	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion bool
	var clearCache bool
	var openUI bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove the local library cache and exit")
	flag.BoolVar(&openUI, "open", false, "open the backend web UI in the default browser")
	flag.Parse()

	if showVersion {
		fmt.Printf("gamehub %s\n", Version)
		return
	}

	if clearCache {
		if err := config.ClearCache(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cache cleared.")
		return
	}

	if openUI {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := openBrowser(cfg.Backend.URL); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openBrowser opens url with the platform's default handler
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting gamehub", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	// Each install gets a stable subscriber id for the event stream
	if err := cfg.EnsureClientID(); err != nil {
		return fmt.Errorf("failed to persist client id: %w", err)
	}

	st, err := store.New(config.DefaultCachePath(), cfg.Backend.URL)
	if err != nil {
		return fmt.Errorf("failed to open library cache: %w", err)
	}
	defer st.Close()

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.ClientID, logger)

	events := backend.NewEventStream(cfg.Backend.URL, cfg.Backend.ClientID, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := events.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("event stream stopped", "error", err)
		}
	}()

	librarySvc := library.NewService(client, st, logger)
	searchSvc := search.NewService(logger)

	mode := library.ViewGrid
	if strings.EqualFold(cfg.UI.DefaultView, "list") {
		mode = library.ViewList
	}

	model := tui.NewModel(librarySvc, searchSvc, events.Events(), mode, cfg.UI.GridColumns)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to GameHub!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// Loop until the backend answers
	var backendURL string
	for {
		fmt.Print("Enter your backend URL (e.g., http://127.0.0.1:5000): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		backendURL = strings.TrimSpace(input)

		if backendURL == "" {
			fmt.Println("Backend URL cannot be empty. Please try again.")
			continue
		}
		if !strings.HasPrefix(backendURL, "http://") && !strings.HasPrefix(backendURL, "https://") {
			backendURL = "http://" + backendURL
		}

		fmt.Println()
		if err := probeBackendWithSpinner(backendURL, logger); err != nil {
			fmt.Printf("\n✗ Could not reach backend: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}
		break
	}

	cfg.Backend.URL = backendURL
	if err := cfg.EnsureClientID(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// Optional: the SteamGridDB key unlocks grid artwork lookups. It is
	// stored by the backend, not in the local config file.
	fmt.Println()
	fmt.Print("SteamGridDB API key (optional, press enter to skip): ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err == nil {
		if apiKey := strings.TrimSpace(string(keyBytes)); apiKey != "" {
			client := backend.NewClient(backendURL, cfg.Backend.ClientID, logger)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			settings, err := client.GetSettings(ctx)
			if err != nil {
				settings = domain.Settings{}
			}
			settings.SteamGridDBAPIKey = apiKey
			if err := client.SaveSettings(ctx, settings); err != nil {
				fmt.Printf("✗ Could not save API key: %v\n", err)
			} else {
				fmt.Println("✓ API key saved.")
			}
		}
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run gamehub again to start the application.")

	return nil
}

// probeBackendWithSpinner verifies the backend is reachable
func probeBackendWithSpinner(backendURL string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		client := backend.NewClient(backendURL, "", logger)
		_, err := client.SystemStats(ctx)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Contacting backend...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Backend is reachable.")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Contacting backend...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection timed out")
		}
	}
}
