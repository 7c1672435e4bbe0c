package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/conversation"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/gateway"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/store"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/ui"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/util"
)

// Default configuration constants
const (
	// DefaultAPIBaseURL points at a locally running ontology backend.
	DefaultAPIBaseURL = "http://localhost:8000"
	// DefaultTimeoutSeconds bounds every backend request.
	DefaultTimeoutSeconds = 60
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Open the session history store
	hist, err := store.Open(*flags.dbDSN)
	if err != nil {
		slog.Error("Failed to open history store", "error", err)
		os.Exit(1)
	}
	defer hist.Close()

	gw := gateway.NewClient(*flags.apiBaseURL,
		gateway.WithTimeout(time.Duration(*flags.timeoutSeconds)*time.Second))
	conv := conversation.New()

	var progOpts []tea.ProgramOption
	if util.ParseBoolEnv("ONTOCHAT_ALT_SCREEN", true) {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	slog.Info("Starting ontochat", "api_base_url", *flags.apiBaseURL, "timeout_seconds", *flags.timeoutSeconds, "dsn_set", *flags.dbDSN != "")
	app := ui.New(gw, conv, hist)
	if _, err := tea.NewProgram(app, progOpts...).Run(); err != nil {
		slog.Error("ontochat failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("ontochat exited successfully")
}

// Config holds environment configuration
type Config struct {
	APIBaseURL     string
	TimeoutSeconds int
	DBDSN          string
	LogLevel       string
	LogFile        string
}

// Flags holds command line flag values
type Flags struct {
	apiBaseURL     *string
	timeoutSeconds *int
	dbDSN          *string
}

// initializeLogger sets up structured logging. The level comes from
// LOG_LEVEL; output goes to ONTOCHAT_LOG_FILE when set, otherwise stderr.
// Logging to stdout would corrupt the terminal interface.
func initializeLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := os.Stderr
	if path := os.Getenv("ONTOCHAT_LOG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = f
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		APIBaseURL:     util.GetEnv("ONTOCHAT_API_BASE_URL", DefaultAPIBaseURL),
		TimeoutSeconds: util.ParseIntEnv("ONTOCHAT_TIMEOUT_SECONDS", DefaultTimeoutSeconds),
		DBDSN:          os.Getenv("ONTOCHAT_DB_DSN"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFile:        os.Getenv("ONTOCHAT_LOG_FILE"),
	}

	// Fall back to the conventional DATABASE_URL when no specific DSN is set.
	if config.DBDSN == "" {
		config.DBDSN = os.Getenv("DATABASE_URL")
		if config.DBDSN != "" {
			slog.Debug("Using DATABASE_URL as ONTOCHAT_DB_DSN", "dsn_set", true)
		}
	}

	slog.Debug("environment variables loaded",
		"ONTOCHAT_API_BASE_URL", config.APIBaseURL,
		"ONTOCHAT_TIMEOUT_SECONDS", config.TimeoutSeconds,
		"ONTOCHAT_DB_DSN_SET", config.DBDSN != "",
		"LOG_LEVEL", config.LogLevel,
		"ONTOCHAT_LOG_FILE", config.LogFile)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		apiBaseURL:     flag.String("api-base-url", config.APIBaseURL, "ontology backend base URL (overrides $ONTOCHAT_API_BASE_URL)"),
		timeoutSeconds: flag.Int("timeout", config.TimeoutSeconds, "backend request timeout in seconds (overrides $ONTOCHAT_TIMEOUT_SECONDS)"),
		dbDSN:          flag.String("db-dsn", config.DBDSN, "history database DSN, empty for in-memory (overrides $ONTOCHAT_DB_DSN or $DATABASE_URL)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"apiBaseURL", *flags.apiBaseURL,
		"timeoutSeconds", *flags.timeoutSeconds,
		"dbDSN_set", *flags.dbDSN != "")

	return flags
}
