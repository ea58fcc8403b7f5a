package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

var laborsCmd = &cobra.Command{
	Use:   "labors",
	Short: "Manage the labor catalog",
	Long:  `List, add, edit, and delete labor definitions.`,
}

var laborsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all labors",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		labors, err := appInstance.Gateway.ListLabors(ctx)
		if err != nil {
			return fmt.Errorf("failed to list labors: %s", gateway.Message(err))
		}

		if len(labors) == 0 {
			fmt.Println("No labors found")
			return nil
		}

		fmt.Printf("%-5s %-40s %12s\n", "ID", "Name", "Std. Price")
		fmt.Println("-------------------------------------------------------------")

		for _, labor := range labors {
			fmt.Printf("%-5d %-40s %12.2f\n",
				labor.ID,
				truncate(labor.Name, 40),
				labor.StandardPrice,
			)
		}

		fmt.Printf("\nTotal: %d labor(s)\n", len(labors))
		return nil
	},
}

var laborsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new labor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		description, _ := cmd.Flags().GetString("description")
		price, _ := cmd.Flags().GetFloat64("price")

		labor := domain.NewLabor(args[0], description, price)

		created, err := appInstance.Gateway.CreateLabor(ctx, labor)
		if err != nil {
			return fmt.Errorf("failed to create labor: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Labor created: %s (ID: %d)\n", created.Name, created.ID)
		return nil
	},
}

var laborsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing labor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid labor ID: %w", err)
		}

		labors, err := appInstance.Gateway.ListLabors(ctx)
		if err != nil {
			return fmt.Errorf("failed to list labors: %s", gateway.Message(err))
		}
		var labor *domain.Labor
		for _, l := range labors {
			if l.ID == id {
				labor = l
				break
			}
		}
		if labor == nil {
			return fmt.Errorf("labor not found")
		}

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			labor.Name = name
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			labor.Description = description
		}
		if cmd.Flags().Changed("price") {
			price, _ := cmd.Flags().GetFloat64("price")
			labor.StandardPrice = price
		}

		if _, err := appInstance.Gateway.UpdateLabor(ctx, labor); err != nil {
			return fmt.Errorf("failed to update labor: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Labor updated: %s\n", labor.Name)
		return nil
	},
}

var laborsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a labor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid labor ID: %w", err)
		}

		if !confirmPrompt(fmt.Sprintf("Delete labor %d?", id)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Gateway.DeleteLabor(ctx, id); err != nil {
			return fmt.Errorf("failed to delete labor: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Labor deleted (ID: %d)\n", id)
		return nil
	},
}

func init() {
	laborsCmd.AddCommand(laborsListCmd)
	laborsCmd.AddCommand(laborsAddCmd)
	laborsCmd.AddCommand(laborsEditCmd)
	laborsCmd.AddCommand(laborsDeleteCmd)

	// Add flags
	laborsAddCmd.Flags().String("description", "", "Labor description")
	laborsAddCmd.Flags().Float64("price", 0, "Standard price (required)")
	laborsAddCmd.MarkFlagRequired("price")

	// Edit flags
	laborsEditCmd.Flags().String("name", "", "New name")
	laborsEditCmd.Flags().String("description", "", "New description")
	laborsEditCmd.Flags().Float64("price", 0, "New standard price")
}
