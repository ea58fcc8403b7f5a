package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvalarezo/taller/internal/domain"
	"github.com/mvalarezo/taller/internal/gateway"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, and edit clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.Gateway.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %s", gateway.Message(err))
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		// Print table header
		fmt.Printf("%-5s %-30s %-15s %-15s\n", "ID", "Name", "National ID", "Phone")
		fmt.Println("----------------------------------------------------------------------")

		for _, client := range clients {
			fmt.Printf("%-5d %-30s %-15s %-15s\n",
				client.ID,
				truncate(client.Name, 30),
				client.NationalID,
				client.Phone,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		nationalID, _ := cmd.Flags().GetString("national-id")
		phone, _ := cmd.Flags().GetString("phone")

		client := domain.NewClient(name, nationalID, phone)
		if err := client.Validate(); err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}

		created, err := appInstance.Gateway.CreateClient(ctx, client)
		if err != nil {
			return fmt.Errorf("failed to create client: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Client created: %s (ID: %d)\n", created.Name, created.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}

		client, err := appInstance.Gateway.GetClient(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get client: %s", gateway.Message(err))
		}

		// Update fields if flags provided
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			client.Name = name
		}
		if cmd.Flags().Changed("national-id") {
			nationalID, _ := cmd.Flags().GetString("national-id")
			client.NationalID = nationalID
		}
		if cmd.Flags().Changed("phone") {
			phone, _ := cmd.Flags().GetString("phone")
			client.Phone = phone
		}

		if err := client.Validate(); err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}

		if _, err := appInstance.Gateway.UpdateClient(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %s", gateway.Message(err))
		}

		fmt.Printf("✓ Client updated: %s\n", client.Name)
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)

	// Add flags
	clientsAddCmd.Flags().String("national-id", "", "National id (required)")
	clientsAddCmd.MarkFlagRequired("national-id")
	clientsAddCmd.Flags().String("phone", "", "Client phone")

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().String("national-id", "", "New national id")
	clientsEditCmd.Flags().String("phone", "", "New phone")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
