package cmd

import (
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose a starting budget, categories and theme",
	Long: "Opens the setup form, then the dashboard. Answers apply to this session\n" +
		"and are saved as the starting values of future sessions.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInteractive(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
