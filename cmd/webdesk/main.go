package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"webdesk/internal/app"
	"webdesk/internal/config"
	"webdesk/internal/server"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config from the default (or overridden) path.
func loadConfig() (*config.Config, string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}

	path := defaults["config_path"]
	cfg, err := config.ReadFromFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	return cfg, path, nil
}

var rootCmd = &cobra.Command{
	Use:   "webdesk",
	Short: "In-memory desktop shell server",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Listen:  %s\n", cfg.Listen)
		fmt.Printf("Log Dir: %s\n", cfg.LogDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Listen:  %s\n", cfg.Listen)
		fmt.Printf("Log Dir: %s\n", cfg.LogDir)
		fmt.Printf("Users:\n")
		for _, u := range cfg.Users {
			locked := " "
			if u.PasswordHash != "" {
				locked = "*"
			}
			fmt.Printf("  %s %-12s %s\n", locked, u.Name, u.Role)
		}
		fmt.Printf("Seeded items: %d\n", len(cfg.Items))
		return nil
	},
}

// user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd NAME",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("New password for %s: ", args[0])
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		if err := cfg.SetPassword(args[0], server.HashPassword(string(pw))); err != nil {
			return err
		}
		if err := config.WriteToFile(path, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Password updated for %s\n", args[0])
		return nil
	},
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the desktop shell server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := app.NewApp(cfg, path)
		if err != nil {
			return fmt.Errorf("initializing app: %w", err)
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return a.Run(ctx)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	userCmd.AddCommand(userPasswdCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(serveCmd)
}
