// Package cli implements the ebf command-line interface.
package cli

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ainnoce10/ebf-console/internal/config"
	"github.com/ainnoce10/ebf-console/internal/db"
	"github.com/ainnoce10/ebf-console/internal/service"
	"github.com/ainnoce10/ebf-console/internal/store"
)

// Version information (set at build time via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	dbPath    string
	jsonOut   bool
	quiet     bool
	assumeYes bool
	noColor   bool
)

// Global configuration (loaded once at startup)
var globalConfig *config.Config

// Exit codes, kept in sync with internal/errors kind mapping.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitNotFound     = 3
	ExitStateError   = 4
	ExitDBError      = 5
)

var rootCmd = &cobra.Command{
	Use:   "ebf",
	Short: "Customer-message management console",
	Long: `ebf manages customer requests: client submissions become
status-carrying messages that staff move through a fixed set of handling
states, with an aggregate dashboard and a client-facing tracking lookup.

Use "ebf init" to create the console database.
Use "ebf serve" to start the HTTP/websocket API.
Use "ebf --help" to see all available commands.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Load global configuration at startup
	var err error
	globalConfig, err = config.Load()
	if err != nil {
		// If config file is invalid, print warning but continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
		globalConfig = config.DefaultConfig()
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default ~/.ebf/ebf.db)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes for confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("ebf %s (%s, %s)\n", Version, shortCommit(), shortDate()))

	rootCmd.AddCommand(versionCmd)
}

// shortCommit returns the first 7 characters of the git commit hash
func shortCommit() string {
	if len(GitCommit) >= 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

// shortDate returns just the date portion of BuildDate (YYYY-MM-DD)
func shortDate() string {
	if len(BuildDate) >= 10 {
		return BuildDate[:10]
	}
	return BuildDate
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// GetDBPath returns the database path to use, applying flag > config priority.
func GetDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if globalConfig != nil {
		return globalConfig.DB
	}
	return "" // Will use default in db.Open
}

// IsJSON returns whether JSON output is requested
func IsJSON() bool {
	return jsonOut
}

// Output prints to stdout unless quiet mode is enabled
func Output(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format, args...)
	}
}

// OutputLine prints a line to stdout unless quiet mode is enabled
func OutputLine(s string) {
	if !quiet {
		fmt.Println(s)
	}
}

// confirm asks the user to confirm a destructive action. With --yes the
// prompt is skipped; without a terminal on stdin the action is declined,
// which is a no-op, not an error.
func confirm(prompt string) bool {
	if assumeYes {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Refusing to proceed without confirmation (use --yes in scripts).")
		return false
	}

	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// openService opens the database and wires a hydrated message service.
// The returned close function releases the database connection.
func openService() (*service.MessageService, func(), error) {
	database, err := db.Open(GetDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := log.New(os.Stderr, "[ebf] ", log.LstdFlags)
	repo := store.NewSQLiteRepository(database.DB, logger)
	st := store.NewStore(repo, logger)
	if err := st.Load(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load messages: %w", err)
	}

	svc := service.NewMessageService(st, logger)
	return svc, func() { database.Close() }, nil
}

// truncate shortens s to maxLen runes for table output.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
