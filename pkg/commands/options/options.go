// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// AddOptions captures the text of a new note or task.
type AddOptions struct {
	Text string
}

// OnOptions selects a day.
type OnOptions struct {
	On string
}

// AddOnArgs wires the day selection flag.
func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.On, "on", "",
		`Specify a date, example: --on="2024-06-05". Defaults to today.`)
}

// PriorityOptions selects a task priority.
type PriorityOptions struct {
	Priority string
}

// AddPriorityArgs wires the priority flag.
func AddPriorityArgs(cmd *cobra.Command, o *PriorityOptions) {
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "",
		"Task priority: low, medium or high. Defaults to medium.")
}

// IDOptions identifies one record.
type IDOptions struct {
	ShowID bool
	ID     string
}

// AddShowIDArgs registers the flag that reveals record ids.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the id of each record.")
}

// MonthOptions selects a month.
type MonthOptions struct {
	Month string
}

// AddMonthArgs wires the month selection flag.
func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Specify a month, example: --month="2024-06". Defaults to the current month.`)
}

// RemoteOptions overrides the configured document-store coordinates.
type RemoteOptions struct {
	Project string
	User    string
}

// AddRemoteArgs wires the remote selection flags.
func AddRemoteArgs(cmd *cobra.Command, o *RemoteOptions) {
	cmd.Flags().StringVar(&o.Project, "project", "",
		"Document store project. Defaults to the configured one.")
	cmd.Flags().StringVar(&o.User, "user", "",
		"User id the records belong to. Defaults to the configured one.")
}
