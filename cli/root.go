package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/binhbb2204/Top-Movies/cli/config"
	"github.com/binhbb2204/Top-Movies/internal/movie"
	"github.com/binhbb2204/Top-Movies/internal/tmdb"
	appconfig "github.com/binhbb2204/Top-Movies/pkg/config"
	"github.com/binhbb2204/Top-Movies/pkg/database"
	"github.com/binhbb2204/Top-Movies/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var dbPathFlag string

var rootCmd = &cobra.Command{
	Use:     "topmovies",
	Short:   "Manage your top movies list",
	Long:    `Search TMDB, keep a ranked list of your favourite movies and rate them from the terminal.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		initLogger(cmd)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the movies database (overrides DB_PATH and the config file)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(systemCmd)
}

// Run executes the command line given in args, reading answers from in and
// writing output to out. Flags start from their defaults on every call.
func Run(args []string, in io.Reader, out io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	return rootCmd.Execute()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// initLogger sets the CLI log level from LOG_LEVEL, then the config file.
func initLogger(cmd *cobra.Command) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		if cfg, err := config.Load(); err == nil {
			level = cfg.Logging.Level
		}
	}
	logger.Init(logger.ParseLevel(level), false, cmd.ErrOrStderr())
	logger.GetLogger().Debug("cli_command", "command", cmd.CommandPath())
}

func resolveDBPath() string {
	if dbPathFlag != "" {
		return dbPathFlag
	}
	if p := os.Getenv("DB_PATH"); p != "" {
		return p
	}
	if cfg, err := config.Load(); err == nil && cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	return appconfig.Default().Database.Path
}

func openStore() (*sql.DB, *movie.SQLStore, error) {
	path := resolveDBPath()
	db, err := database.Open(path)
	if err != nil {
		logger.GetLogger().Error("database_open_failed", "path", path, "error", err.Error())
		return nil, nil, err
	}
	logger.GetLogger().Debug("database_opened", "path", path)
	return db, movie.NewSQLStore(db), nil
}

func newSource() (tmdb.Source, error) {
	cfg := appconfig.Default()
	cfg.ApplyEnv()
	if cfg.TMDB.Token == "" {
		return nil, appconfig.ErrMissingToken
	}
	return tmdb.NewClient(cfg.TMDB)
}

func printSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
}

func printError(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", msg)
}

func describeStoreError(err error) string {
	switch {
	case errors.Is(err, movie.ErrNotFound):
		return "Movie not found"
	case errors.Is(err, movie.ErrDuplicateTitle):
		return "That movie is already in your list"
	default:
		return err.Error()
	}
}
