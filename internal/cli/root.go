package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvalarezo/taller/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "taller",
	Short: "A shop management tool for vehicle repair businesses",
	Long: `Taller manages clients, vehicles, parts, labor, and maintenance records
for a vehicle repair shop, backed by the shop's API.

By default, running taller without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(partsCmd)
	rootCmd.AddCommand(laborsCmd)
	rootCmd.AddCommand(maintenancesCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}
