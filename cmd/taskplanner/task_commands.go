package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a task completed or pending",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskToggle,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var toggleDone bool

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskToggleCmd, taskDeleteCmd)

	taskToggleCmd.Flags().BoolVar(&toggleDone, "done", true, "Mark the task completed; --done=false marks it pending")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	created, err := openTaskStore(cfg).Add(args[0])
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	fmt.Println(created.ID)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks := openTaskStore(cfg).List()
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for _, item := range tasks {
		rows = append(rows, []string{item.ID, formatStatus(item.Completed), truncateTableCell(item.Name)})
	}

	fmt.Print(formatTable([]string{"ID", "STATUS", "NAME"}, rows))
	return nil
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := openTaskStore(cfg).SetCompleted(args[0], toggleDone); err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := openTaskStore(cfg).Delete(args[0]); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

var (
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// formatStatus renders a task status label, colored when stdout is a
// terminal.
func formatStatus(completed bool) string {
	label := "pending"
	style := pendingStyle
	if completed {
		label = "completed"
		style = completedStyle
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return label
	}
	return style.Render(label)
}
