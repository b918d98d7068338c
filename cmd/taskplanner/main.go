// Package main implements the taskplanner CLI tool.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/plannerhq/taskplanner/internal/config"
	"github.com/plannerhq/taskplanner/mail"
	"github.com/plannerhq/taskplanner/subscription"
	"github.com/plannerhq/taskplanner/task"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "taskplanner",
	Short:         "Task Planner - a task tracker with email reminders",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	configPath string
	dataDir    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the data files")
}

// loadConfig loads configuration, applying the --data-dir override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Storage.Dir = dataDir
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func openTaskStore(cfg *config.Config) *task.Store {
	return task.NewStore(cfg.Storage.Dir)
}

func openSubscriptionStore(cfg *config.Config) *subscription.Store {
	return subscription.NewStore(cfg.Storage.Dir)
}

func newSender(cfg *config.Config) (mail.Sender, error) {
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}
