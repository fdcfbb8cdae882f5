package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/config"
	"github.com/nurpe/painel-mulher/internal/db"
	"github.com/nurpe/painel-mulher/internal/logger"
)

var (
	timeout time.Duration
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "painel-cli",
	Short: "Operator tools for the women's support network panel",
	Long: `painel-cli runs maintenance tasks against the panel database.

Available commands:
  regions - print the planning regions and their municipalities
  import  - load a JSON dump of equipment, vehicles and requests
  export  - write comparison, goals or data reports to disk
  grant   - assign a role to a user`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(grantCmd)
}

func main() {
	_ = godotenv.Load(".env.local")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads configuration and opens the database for commands that need it.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log = logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, database, nil
}
