package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/openview/internal/config"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/mmcdole/openview/internal/gallery"
	"github.com/mmcdole/openview/internal/log"
	"github.com/mmcdole/openview/internal/search"
	"github.com/mmcdole/openview/internal/server"
	"github.com/mmcdole/openview/internal/tui"
	"github.com/mmcdole/openview/internal/tui/styles"
	"github.com/mmcdole/openview/internal/viewer"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type options struct {
	list   bool
	filter string
	dir    string
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&opts.list, "list", false, "print the directory listing instead of starting the browser")
	flag.StringVar(&opts.filter, "filter", "", "with -list, only print images matching this fuzzy query")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: openview [flags] [directory]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("openview %s\n", Version)
		return
	}
	opts.dir = flag.Arg(0)

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
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

	logger.Info("starting openview", "version", Version)

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))

	if !cfg.IsConfigured() {
		if !interactive {
			return fmt.Errorf("no server configured: set server.url in %s or OPENVIEW_SERVER_URL",
				config.DefaultConfigDir())
		}
		return runSetupFlow(cfg)
	}

	clientOpts := []server.Option{
		server.WithTimeout(time.Duration(cfg.Server.Timeout) * time.Second),
	}
	if cfg.Server.Username != "" {
		clientOpts = append(clientOpts, server.WithBasicAuth(cfg.Server.Username, cfg.Server.Password))
	}
	client := server.NewClient(logger, clientOpts...)

	loc, err := gallery.NewLocation(cfg.Server.URL, opts.dir)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	if opts.list || !interactive {
		return runList(context.Background(), os.Stdout, loc, client, cfg.Gallery.PageSize, opts.filter, logger)
	}

	launcher := viewer.NewLauncher(cfg.Viewer.Command, cfg.Viewer.Args, logger)
	model := tui.NewModel(loc, client, launcher, tui.Options{
		PageSize:      cfg.Gallery.PageSize,
		PreviewSize:   cfg.Gallery.PreviewSize,
		FetchTimeout:  time.Duration(cfg.Server.Timeout) * time.Second,
		ShowInspector: cfg.UI.ShowInspector,
	}, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI", "client_session", client.SessionID())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runList drains every page of the directory and prints one line per entry:
// a "d" or "i" marker, the name and the URL, tab separated.
func runList(ctx context.Context, w io.Writer, loc gallery.Location, repo domain.ListingRepository, pageSize int, filter string, logger *slog.Logger) error {
	session := gallery.New(loc, repo, logger, gallery.Options{PageSize: pageSize})

	var failure string
	session.Notifications.Subscribe(func(n domain.Notification) {
		failure = n.Text
	})
	session.OnReady(func() {
		for session.Items.Load(ctx, false) {
		}
	})
	session.MarkReady()

	if session.State.Current() == domain.StateFailed {
		return fmt.Errorf("listing /%s: %s", loc.Directory(), failure)
	}

	images := session.Items.Images()
	if filter != "" {
		images = search.FilterImages(filter, images)
	} else {
		for _, d := range session.Items.Directories() {
			fmt.Fprintf(w, "d\t%s/\t%s\n", d.Name, d.URL)
		}
	}
	for _, img := range images {
		fmt.Fprintf(w, "i\t%s\t%s\n", img.Name, img.URL)
	}
	return nil
}

// runSetupFlow handles the initial setup when no server is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to OpenView!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var serverURL string

	for {
		fmt.Print("Enter your OpenView server URL (e.g., http://192.168.1.100:8080): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimRight(strings.TrimSpace(input), "/")

		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		if err := detectServerWithSpinner(serverURL); err != nil {
			fmt.Printf("\n✗ Could not reach an OpenView server: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}
		break
	}

	cfg.Server.URL = serverURL

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run openview again to start browsing.")

	return nil
}

// detectServerWithSpinner probes the server with a visual spinner
func detectServerWithSpinner(serverURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- server.Detect(ctx, serverURL)
	}()

	frame := 0
	fmt.Printf("\r%s Checking server...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Found OpenView server")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking server...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("detection timed out")
		}
	}
}
