package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gvawatch/gva-console/internal/dataset"
	"github.com/gvawatch/gva-console/internal/gva"
	"github.com/gvawatch/gva-console/internal/llm"
	"github.com/gvawatch/gva-console/internal/ui"
	"github.com/spf13/cobra"
)

var (
	noTUI     bool
	forceTUI  bool
	watchData bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard TUI",
	Long: `Start the GVA Console dashboard which includes:

1. Ten-year summary table and filterable incident list
2. CSV export of the summary and the current filtered view
3. Gemini-backed report generation, resource lookup, and chat

The serve command runs until quit (q or Ctrl+C).

Examples:
  # Start with the built-in dataset
  gva-console serve

  # Start over a dataset file and reload it on change
  gva-console serve --data-file ./data/gva.json --watch

  # Force TUI mode in terminals that fail capability detection
  gva-console serve --force-tui`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print the dataset and exit instead of starting the TUI")
	serveCmd.Flags().BoolVar(&forceTUI, "force-tui", false, "Force TUI mode even in unsupported terminals")
	serveCmd.Flags().BoolVar(&watchData, "watch", false, "Reload the dataset file when it changes on disk")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	// Initialize logger - use file logging for TUI mode to keep terminal clean
	var logger *log.Logger
	willUseTUI := determineTUIMode()

	if willUseTUI {
		// Silent TUI mode: logs go to file, errors still visible on terminal
		logFile := setupFileLogger()
		if logFile != nil {
			// Use multi-writer: file for all logs, stderr for errors only
			logger = log.New(io.MultiWriter(logFile, &errorFilterWriter{os.Stderr}), "[serve] ", log.LstdFlags)
			defer logFile.Close()
		} else {
			// Fallback to stderr if file creation fails
			logger = log.New(os.Stderr, "[serve] ", log.LstdFlags)
		}
	} else {
		// Headless mode: normal stderr logging
		logger = log.New(os.Stderr, "[serve] ", log.LstdFlags)
	}

	logger.Println("Starting GVA Console")

	// Load dataset (built-in when no file is configured)
	dataPath := config.Data.File
	if dataPath != "" {
		dataPath = resolvePathRelativeToBase(getWorkingDir(), dataPath)
		logger.Printf("Using dataset at %s", dataPath)
	}
	data, err := dataset.Load(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	gateway := llm.NewClient(config.Gemini.Endpoint, config.Gemini.Model, config.Gemini.APIKey, logger)

	if noTUI {
		// Headless: dump the dataset in plain text and exit. Useful when the
		// terminal cannot host tview at all.
		printSummary(data.Table)
		fmt.Println()
		printIncidents(data.Incidents)
		return nil
	}

	logger.Printf("Terminal info: %s", getTerminalInfo())

	// Test if TUI can be initialized (unless forced)
	if !forceTUI && !canInitializeTUI() {
		// Check if we can fix this with pseudo-TTY
		if needsPseudoTTY() {
			logger.Println("No TTY available, using script command for pseudo-TTY...")
			return runWithPseudoTTY(cmd, args)
		}
		logger.Println("TUI cannot be initialized in this terminal environment")
		logger.Println("")
		logger.Println("For full TUI experience, use:")
		logger.Println("  1. Native terminal (gnome-terminal, iTerm2, etc.)")
		logger.Println("  2. SSH with proper TERM settings")
		logger.Println("")
		logger.Println("Current alternatives:")
		logger.Println("  - CLI commands: gva-console list incidents")
		logger.Println("  - Headless mode: gva-console serve --no-tui")
		return fmt.Errorf("terminal does not support TUI mode")
	}

	// File-backed logger for the UI to prevent terminal corruption
	uiLogger := log.New(io.Discard, "[UI] ", log.LstdFlags)
	baseDir := getWorkingDir()
	logDir := filepath.Join(baseDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logger.Printf("Warning: Could not create logs directory: %v", err)
	} else {
		logPath := filepath.Join(logDir, "gva-console-ui.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.Printf("Warning: Could not create UI log file at %s: %v", logPath, err)
		} else {
			uiLogger = log.New(logFile, "[UI] ", log.LstdFlags)
			uiLogger.Printf("UI logger initialized (path=%s)", logPath)
			defer logFile.Close()
		}
	}

	dash := ui.NewUI(ctx, data, gateway, ui.Options{
		ExportDir: config.Export.Dir,
		Coords:    configuredCoords(config),
		Logger:    uiLogger,
	})

	// Reload the dataset file into the running UI when it changes
	if watchData && dataPath != "" {
		go func() {
			err := dataset.Watch(ctx, dataPath, uiLogger, func(d *dataset.Dataset) {
				dash.ReplaceDataset(d)
			})
			if err != nil && ctx.Err() == nil {
				logger.Printf("Dataset watch error: %v", err)
			}
		}()
	}

	if err := dash.Start(ctx); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Println("GVA Console stopped")
	return nil
}

// configuredCoords returns the configured location, or nil when none is set.
// (0,0) is treated as unset; it is in the Gulf of Guinea, not the US.
func configuredCoords(config Config) *gva.Coordinates {
	if config.Location.Lat == 0 && config.Location.Lng == 0 {
		return nil
	}
	return &gva.Coordinates{Lat: config.Location.Lat, Lng: config.Location.Lng}
}

// determineTUIMode determines if TUI will be used (extracted for logging setup)
func determineTUIMode() bool {
	if noTUI {
		return false
	}
	if !forceTUI && !canInitializeTUI() {
		// Check if we can fix this with pseudo-TTY
		if needsPseudoTTY() {
			// Will use pseudo-TTY, so TUI mode
			return true
		}
		return false
	}
	return true
}

// canInitializeTUI tests if tcell can actually be initialized
func canInitializeTUI() bool {
	screen, err := tcell.NewScreen()
	if err != nil {
		return false
	}

	err = screen.Init()
	if err != nil {
		return false
	}

	// Clean up immediately
	screen.Fini()
	return true
}

// needsPseudoTTY checks if we need to use script command for pseudo-TTY
func needsPseudoTTY() bool {
	// Try to actually open /dev/tty (not just check if it exists)
	if file, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		file.Close()
		return false
	}
	return true
}

// runWithPseudoTTY re-executes the command using script for pseudo-TTY
func runWithPseudoTTY(cmd *cobra.Command, args []string) error {
	// Get the current executable path
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Build the command arguments
	cmdArgs := []string{"serve"}
	cmdArgs = append(cmdArgs, args...)

	// Add force-tui flag if not already present
	hasForceTUI := false
	for _, arg := range args {
		if arg == "--force-tui" {
			hasForceTUI = true
			break
		}
	}
	if !hasForceTUI {
		cmdArgs = append(cmdArgs, "--force-tui")
	}

	// Build the full command string with proper quoting
	quotedExecutable := fmt.Sprintf(`"%s"`, executable)
	quotedArgs := make([]string, len(cmdArgs))
	for i, arg := range cmdArgs {
		quotedArgs[i] = fmt.Sprintf(`"%s"`, arg)
	}

	fullCmd := fmt.Sprintf("TERM=%s %s %s",
		os.Getenv("TERM"),
		quotedExecutable,
		strings.Join(quotedArgs, " "))

	// Use script command to create pseudo-TTY
	scriptCmd := exec.Command("script", "-qec", fullCmd, "/dev/null")
	scriptCmd.Stdin = os.Stdin
	scriptCmd.Stdout = os.Stdout
	scriptCmd.Stderr = os.Stderr

	// Set environment variables
	scriptCmd.Env = os.Environ()

	return scriptCmd.Run()
}

// getTerminalInfo returns detailed terminal information
func getTerminalInfo() string {
	var info []string

	term := os.Getenv("TERM")
	if term == "" {
		info = append(info, "TERM=<not set>")
	} else {
		info = append(info, fmt.Sprintf("TERM=%s", term))
	}

	termProgram := os.Getenv("TERM_PROGRAM")
	if termProgram != "" {
		info = append(info, fmt.Sprintf("TERM_PROGRAM=%s", termProgram))
	}

	if width, height := getTerminalSize(); width > 0 && height > 0 {
		info = append(info, fmt.Sprintf("Size=%dx%d", width, height))
	}

	if isTerminal() {
		info = append(info, "TTY=yes")
	} else {
		info = append(info, "TTY=no")
	}

	if supportsColors() {
		info = append(info, "Colors=yes")
	} else {
		info = append(info, "Colors=no")
	}

	return strings.Join(info, ", ")
}

// getExecutableDir returns the directory of the running executable.
// Falls back to current directory on error.
func getExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// getWorkingDir returns the current working directory.
// Falls back to executable directory if os.Getwd fails.
func getWorkingDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	return getExecutableDir()
}

// resolvePathRelativeToBase resolves a possibly relative path against a base directory.
// Absolute paths are returned unchanged.
func resolvePathRelativeToBase(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	// Normalize leading "./" for consistent joining
	p = strings.TrimPrefix(p, "./")
	return filepath.Join(base, p)
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	if fileInfo, err := os.Stdout.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// supportsColors checks if terminal supports colors
func supportsColors() bool {
	term := strings.ToLower(os.Getenv("TERM"))

	// Check for color support indicators
	colorTerms := []string{"color", "256", "truecolor", "24bit"}
	for _, colorTerm := range colorTerms {
		if strings.Contains(term, colorTerm) {
			return true
		}
	}

	// Check COLORTERM environment variable
	if colorTerm := os.Getenv("COLORTERM"); colorTerm != "" {
		return true
	}

	// Known color-supporting terminals
	supportedTerms := []string{"xterm", "screen", "tmux", "linux", "ansi"}
	for _, supported := range supportedTerms {
		if strings.Contains(term, supported) {
			return true
		}
	}

	return false
}

// setupFileLogger creates a log file for TUI mode
func setupFileLogger() *os.File {
	baseDir := getWorkingDir()
	logDir := filepath.Join(baseDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		// If we can't create logs directory, we'll fall back to stderr
		return nil
	}

	logPath := filepath.Join(logDir, "gva-console-serve.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// If we can't create the log file, we'll fall back to stderr
		return nil
	}

	return logFile
}

// errorFilterWriter only writes error messages to the underlying writer
type errorFilterWriter struct {
	writer io.Writer
}

func (w *errorFilterWriter) Write(p []byte) (n int, err error) {
	// Only write if the log message contains error indicators
	lc := strings.ToLower(string(p))

	if strings.Contains(lc, "error") ||
		strings.Contains(lc, "failed") ||
		strings.Contains(lc, "panic") {
		return w.writer.Write(p)
	}
	// Suppress non-error logs in TUI mode
	return len(p), nil
}
