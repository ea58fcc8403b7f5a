package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

var partsCmd = &cobra.Command{
	Use:   "parts",
	Short: "Manage the parts inventory",
	Long:  `List, add, edit, and delete parts.`,
}

var partsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all parts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		parts, err := appInstance.Gateway.ListParts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list parts: %s", gateway.Message(err))
		}

		if len(parts) == 0 {
			fmt.Println("No parts found")
			return nil
		}

		fmt.Printf("%-5s %-12s %-35s %12s %8s\n", "ID", "Code", "Name", "Unit Price", "Stock")
		fmt.Println("---------------------------------------------------------------------------")

		threshold := appInstance.Config.Shop.LowStockThreshold
		for _, part := range parts {
			flag := ""
			if part.StockQty <= threshold {
				flag = "  (low)"
			}
			fmt.Printf("%-5d %-12s %-35s %12.2f %8d%s\n",
				part.ID,
				part.Code,
				truncate(part.Name, 35),
				part.UnitPrice,
				part.StockQty,
				flag,
			)
		}

		fmt.Printf("\nTotal: %d part(s)\n", len(parts))
		return nil
	},
}

var partsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		code, _ := cmd.Flags().GetString("code")
		price, _ := cmd.Flags().GetFloat64("price")
		stock, _ := cmd.Flags().GetInt("stock")

		part := &domain.Part{Code: code, Name: args[0], UnitPrice: price, StockQty: stock}

		created, err := appInstance.Gateway.CreatePart(ctx, part)
		if err != nil {
			return fmt.Errorf("failed to create part: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Part created: %s (ID: %d)\n", created.Name, created.ID)
		return nil
	},
}

var partsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid part ID: %w", err)
		}

		parts, err := appInstance.Gateway.ListParts(ctx)
		if err != nil {
			return fmt.Errorf("failed to list parts: %s", gateway.Message(err))
		}
		var part *domain.Part
		for _, p := range parts {
			if p.ID == id {
				part = p
				break
			}
		}
		if part == nil {
			return fmt.Errorf("part not found")
		}

		if cmd.Flags().Changed("code") {
			code, _ := cmd.Flags().GetString("code")
			part.Code = code
		}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			part.Name = name
		}
		if cmd.Flags().Changed("price") {
			price, _ := cmd.Flags().GetFloat64("price")
			part.UnitPrice = price
		}
		if cmd.Flags().Changed("stock") {
			stock, _ := cmd.Flags().GetInt("stock")
			part.StockQty = stock
		}

		if _, err := appInstance.Gateway.UpdatePart(ctx, part); err != nil {
			return fmt.Errorf("failed to update part: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Part updated: %s\n", part.Name)
		return nil
	},
}

var partsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid part ID: %w", err)
		}

		if !confirmPrompt(fmt.Sprintf("Delete part %d?", id)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Gateway.DeletePart(ctx, id); err != nil {
			return fmt.Errorf("failed to delete part: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Part deleted (ID: %d)\n", id)
		return nil
	},
}

func init() {
	partsCmd.AddCommand(partsListCmd)
	partsCmd.AddCommand(partsAddCmd)
	partsCmd.AddCommand(partsEditCmd)
	partsCmd.AddCommand(partsDeleteCmd)

	// Add flags
	partsAddCmd.Flags().String("code", "", "Part code")
	partsAddCmd.Flags().Float64("price", 0, "Unit price (required)")
	partsAddCmd.MarkFlagRequired("price")
	partsAddCmd.Flags().Int("stock", 0, "Initial stock quantity")

	// Edit flags
	partsEditCmd.Flags().String("code", "", "New code")
	partsEditCmd.Flags().String("name", "", "New name")
	partsEditCmd.Flags().Float64("price", 0, "New unit price")
	partsEditCmd.Flags().Int("stock", 0, "New stock quantity")
}
