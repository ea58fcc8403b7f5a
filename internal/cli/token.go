package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mvalarezo/taller/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the backend API token",
	Long: `Store, inspect, or remove the API token used to authenticate with the
shop's backend. The token is kept in the system keyring; the ` + auth.EnvToken + `
environment variable overrides it when set.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API token in the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("Enter API token: ")

		// Read token securely (no echo)
		token, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if len(token) == 0 {
			return errors.New("token cannot be empty")
		}

		if err := appInstance.Tokens.SetToken(string(token)); err != nil {
			return err
		}

		fmt.Println("✓ API token stored")
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the API token from the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.Tokens.DeleteToken(); err != nil {
			if errors.Is(err, auth.ErrNoToken) {
				fmt.Println("No token was stored")
				return nil
			}
			return err
		}

		fmt.Println("✓ API token removed")
		return nil
	},
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API token is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := appInstance.Tokens.GetToken(); err != nil {
			if errors.Is(err, auth.ErrNoToken) {
				fmt.Println("No API token configured. Run 'taller token set'.")
				return nil
			}
			return err
		}

		fmt.Println("✓ An API token is configured")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenClearCmd)
	tokenCmd.AddCommand(tokenStatusCmd)
}
