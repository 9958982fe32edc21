package viewer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// candidateViewers defines the preferred image viewer order for each platform.
// Each viewer takes the image URL as its last argument.
var candidateViewers = map[string][]string{
	"linux":   {"imv", "feh", "sxiv", "eog"},
	"darwin":  {},
	"windows": {},
}

// Launcher opens image URLs in an external viewer
type Launcher struct {
	command string   // configured viewer command, empty for auto-detect
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Open shows the image at url in the configured viewer, the first
// installed candidate, or the system default handler.
func (l *Launcher) Open(url string) error {
	// Tier 1: User configured a specific viewer
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("launching viewer", "command", l.command, "args", args)
		if err := l.start(l.command, args...); err != nil {
			return fmt.Errorf("failed to launch %s: %w", l.command, err)
		}
		return nil
	}

	// Tier 2: Try candidate chain
	for _, name := range candidateViewers[runtime.GOOS] {
		if _, err := l.lookPath(name); err != nil {
			l.logger.Debug("viewer not available", "viewer", name)
			continue
		}
		if err := l.start(name, url); err == nil {
			l.logger.Info("launched with detected viewer", "viewer", name)
			return nil
		}
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	name, args := defaultHandler(runtime.GOOS, url)
	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	return nil
}

// defaultHandler returns the system command that opens url
func defaultHandler(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}
