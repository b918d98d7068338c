package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subscriberCmd = &cobra.Command{
	Use:   "subscriber",
	Short: "Manage reminder subscribers",
}

var subscriberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List verified subscribers",
	Args:  cobra.NoArgs,
	RunE:  runSubscriberList,
}

var subscriberRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Remove a subscriber",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscriberRemove,
}

func init() {
	rootCmd.AddCommand(subscriberCmd)
	subscriberCmd.AddCommand(subscriberListCmd, subscriberRemoveCmd)
}

func runSubscriberList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	subscribers := openSubscriptionStore(cfg).Subscribers()
	if len(subscribers) == 0 {
		fmt.Println("No subscribers found.")
		return nil
	}

	for _, email := range subscribers {
		fmt.Println(email)
	}
	return nil
}

func runSubscriberRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := openSubscriptionStore(cfg).Unsubscribe(args[0]); err != nil {
		return fmt.Errorf("remove subscriber: %w", err)
	}
	return nil
}
