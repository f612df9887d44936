package main

import (
	"fmt"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string

	cfg    *config.Config
	logger *log.Logger

	rootCmd = &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker",
		Long: `fintrack tracks budgets, expenses and incomes per owner, derives a
dashboard with health score and recommendations, and serves it as a JSON API.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile(envFile)

	loaded, err := cli.LoadAndValidateConfig(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = cli.SetupLogger(cfg.LogLevel, cfg.LogFormat, log.ComponentApp)
	logger.Debug("Configuration loaded", "command", cmd.Name())
	return nil
}

// ownerFlag falls back to the configured default owner.
func ownerFlag(cmd *cobra.Command) (string, error) {
	owner, _ := cmd.Flags().GetString("owner")
	if owner == "" {
		owner = cfg.DefaultOwnerID
	}
	if owner == "" {
		return "", fmt.Errorf("no owner: pass --owner or set DEFAULT_OWNER_ID")
	}
	return owner, nil
}
