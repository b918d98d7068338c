package main

import (
	"github.com/spf13/cobra"

	"github.com/plannerhq/taskplanner/mail"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send a pending-task reminder to every subscriber",
	Long: `Send a reminder email listing the pending tasks to every verified
subscriber. Nothing is sent when there are no pending tasks or no
subscribers. Intended to be run periodically, for example from cron.`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sender, err := newSender(cfg)
	if err != nil {
		return err
	}

	reminder := &mail.Reminder{
		Tasks:         openTaskStore(cfg),
		Subscriptions: openSubscriptionStore(cfg),
		Composer:      mail.NewComposer(cfg.HTTP.BaseURL),
		Sender:        sender,
		Logger:        newLogger(),
	}
	return reminder.SendReminders(cmd.Context())
}
