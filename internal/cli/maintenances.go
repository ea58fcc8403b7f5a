package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mvalarezo/taller/internal/gateway"
)

var maintenancesCmd = &cobra.Command{
	Use:   "maintenances",
	Short: "Browse maintenance records",
	Long: `List and inspect recorded maintenances.

New maintenances are composed interactively; run the TUI and press 'm'.`,
}

var maintenancesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List maintenance records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		vehicleID, _ := cmd.Flags().GetInt64("vehicle")

		var err error
		records, err := appInstance.Gateway.ListMaintenances(ctx)
		if err != nil {
			return fmt.Errorf("failed to list maintenances: %s", gateway.Message(err))
		}
		if vehicleID > 0 {
			records, err = appInstance.ReportService.GetVehicleHistory(ctx, vehicleID)
			if err != nil {
				return fmt.Errorf("failed to load history: %s", gateway.Message(err))
			}
		}

		if len(records) == 0 {
			fmt.Println("No maintenances found")
			return nil
		}

		fmt.Printf("%-5s %-12s %-10s %12s %12s\n", "ID", "Date", "Vehicle", "Odometer", "Total")
		fmt.Println("-----------------------------------------------------------")

		for _, record := range records {
			fmt.Printf("%-5d %-12s %-10d %9d km %12.2f\n",
				record.ID,
				record.Date.Format("2006-01-02"),
				record.VehicleID,
				record.RecordedOdometerKm,
				record.TotalCost,
			)
		}

		fmt.Printf("\nTotal: %d maintenance(s)\n", len(records))
		return nil
	},
}

var maintenancesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one maintenance with its part and labor lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid maintenance ID: %w", err)
		}

		record, err := appInstance.Gateway.GetMaintenance(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get maintenance: %s", gateway.Message(err))
		}

		fmt.Printf("Maintenance #%d\n", record.ID)
		if record.Vehicle != nil {
			fmt.Printf("  Vehicle:  %s\n", record.Vehicle.Label())
		} else {
			fmt.Printf("  Vehicle:  #%d\n", record.VehicleID)
		}
		fmt.Printf("  Date:     %s\n", record.Date.Format("2006-01-02"))
		fmt.Printf("  Odometer: %d km (was %d km)\n", record.RecordedOdometerKm, record.PriorOdometerKm)
		if record.Notes != "" {
			fmt.Printf("  Notes:    %s\n", record.Notes)
		}

		if len(record.Parts) > 0 {
			fmt.Println("\n  Parts:")
			for _, p := range record.Parts {
				fmt.Printf("    %-30s x%-3d %10.2f = %10.2f\n",
					truncate(p.Name, 30), p.Quantity, p.UnitPriceAtTime,
					float64(p.Quantity)*p.UnitPriceAtTime)
			}
		}
		if len(record.Labors) > 0 {
			fmt.Println("\n  Labor:")
			for _, l := range record.Labors {
				fmt.Printf("    %-34s %10.2f\n", truncate(l.Name, 34), l.CostAtTime)
			}
		}

		fmt.Printf("\n  Parts subtotal: %10.2f\n", record.PartsSubtotal())
		fmt.Printf("  Labor subtotal: %10.2f\n", record.LaborSubtotal())
		fmt.Printf("  Total:          %10.2f\n", record.TotalCost)
		return nil
	},
}

func init() {
	maintenancesCmd.AddCommand(maintenancesListCmd)
	maintenancesCmd.AddCommand(maintenancesShowCmd)

	maintenancesListCmd.Flags().Int64("vehicle", 0, "Only records for this vehicle ID")
}
