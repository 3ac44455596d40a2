package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-console/internal/api"
	"github.com/username/timesheet-console/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timesheet-console",
		Short: "Workforce management admin console",
		Long:  "Admin console for the timesheet backend: holiday calendar, timesheets, employees, vacations and report export",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(forgotPasswordCmd())
	rootCmd.AddCommand(resetPasswordCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(timesheetCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(employeesCmd())
	rootCmd.AddCommand(projectsCmd())
	rootCmd.AddCommand(designationsCmd())
	rootCmd.AddCommand(vacationsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads and expands the configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

// newAPIClient wires the session manager and backend client
func newAPIClient(cfg *config.Config) (*api.Client, *api.SessionManager, error) {
	sessions := api.NewSessionManager(cfg.Session.File, logger)
	if err := sessions.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.GetTimeout(), sessions, logger)
	return client, sessions, nil
}

// consoleNotifier is the toast equivalent: one line per completed action
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println("✅ " + msg) }
func (consoleNotifier) Error(msg string)   { fmt.Println("❌ " + msg) }

// confirm asks a blocking y/N question on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
