// Package cli provides the Cobra-based entrypoint for the watch store
// server.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "watchstore",
	Short: "Watch store REST API server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; env vars and flags win over it
		_ = godotenv.Load()

		if cfg := viper.GetString("config"); cfg != "" {
			viper.SetConfigFile(cfg)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
		}

		lvlStr := strings.ToLower(viper.GetString("log-level"))
		lvl := slog.LevelInfo
		switch lvlStr {
		case "debug":
			lvl = slog.LevelDebug
		case "warn", "warning":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		}
		slog.SetDefault(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
		))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("order-store", "memory", "order store backend: memory|postgres")
	serveCmd.Flags().String("database-url", "", "postgres connection string")
	serveCmd.Flags().String("session-store", "memory", "session store backend: memory|redis")
	serveCmd.Flags().String("redis-addr", "localhost:6379", "redis address")
	serveCmd.Flags().Bool("seed", true, "seed sample catalog and accounts when empty")
	rootCmd.AddCommand(serveCmd)

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("order-store", serveCmd.Flags().Lookup("order-store"))
	viper.BindPFlag("database-url", serveCmd.Flags().Lookup("database-url"))
	viper.BindPFlag("session-store", serveCmd.Flags().Lookup("session-store"))
	viper.BindPFlag("redis-addr", serveCmd.Flags().Lookup("redis-addr"))
	viper.BindPFlag("seed", serveCmd.Flags().Lookup("seed"))
	viper.SetEnvPrefix("WATCHSTORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
