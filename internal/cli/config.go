package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mvalarezo/taller/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or reset the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.DefaultConfigPath())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(appInstance.Config)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Rewrite the configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will overwrite your configuration with defaults. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		cfg := config.DefaultConfig()
		if err := cfg.Save(config.DefaultConfigPath()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Printf("Configuration reset: %s\n", config.DefaultConfigPath())
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configResetCmd)
}
