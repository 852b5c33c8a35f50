package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

var ordersJSON bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect recorded imports",
	Long:  `Inspect the import ledger populated by 'ordersnap import --save' and 'ordersnap watch'.`,
}

var ordersListCmd = &cobra.Command{
	Use:   "list [batch-id]",
	Short: "List the orders of an import",
	Long:  `Lists the orders recorded by one import. Without a batch ID the most recent import is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOrdersList,
}

var ordersImportsCmd = &cobra.Command{
	Use:   "imports",
	Short: "List recorded imports",
	Args:  cobra.NoArgs,
	RunE:  runOrdersImports,
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete [batch-id]",
	Short: "Delete a recorded import",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersDelete,
}

func init() {
	ordersCmd.PersistentFlags().BoolVar(&ordersJSON, "json", false, "output as JSON")
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersImportsCmd)
	ordersCmd.AddCommand(ordersDeleteCmd)
	rootCmd.AddCommand(ordersCmd)
}

func ledgerService() (driving.LedgerService, error) {
	svc, err := loadServices()
	if err != nil {
		return nil, err
	}
	if svc.Ledger == nil {
		return nil, errors.New("ledger service not configured")
	}
	return svc.Ledger, nil
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	ledger, err := ledgerService()
	if err != nil {
		return err
	}

	var batchID string
	if len(args) > 0 {
		batchID = args[0]
	} else {
		summaries, err := ledger.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list imports: %w", err)
		}
		if len(summaries) == 0 {
			cmd.Println("No imports recorded.")
			return nil
		}
		batchID = summaries[0].ID
	}

	batch, err := ledger.Get(cmd.Context(), batchID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("import %s not found", batchID)
	}
	if err != nil {
		return fmt.Errorf("failed to load import: %w", err)
	}

	if ordersJSON {
		return outputJSON(cmd.OutOrStdout(), batch.Orders)
	}

	w := cmd.OutOrStdout()
	st := stylesFor(w)
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Import %s: %s, %d orders",
		batch.ID, batch.SourceName, len(batch.Orders))))
	fmt.Fprintln(w)
	printOrders(w, st, batch.Orders)
	return nil
}

func runOrdersImports(cmd *cobra.Command, _ []string) error {
	ledger, err := ledgerService()
	if err != nil {
		return err
	}

	summaries, err := ledger.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list imports: %w", err)
	}

	if ordersJSON {
		return outputJSON(cmd.OutOrStdout(), summaries)
	}
	if len(summaries) == 0 {
		cmd.Println("No imports recorded.")
		return nil
	}

	w := cmd.OutOrStdout()
	st := stylesFor(w)
	for _, s := range summaries {
		fmt.Fprintf(w, "%s  %s  %-5s  %3d orders  %3d items  %s\n",
			st.Label.Render(s.ID),
			s.ImportedAt.Local().Format("2006-01-02 15:04"),
			s.Format,
			s.OrderCount,
			s.ItemCount,
			st.Muted.Render(s.SourceName))
	}
	return nil
}

func runOrdersDelete(cmd *cobra.Command, args []string) error {
	ledger, err := ledgerService()
	if err != nil {
		return err
	}

	if err := ledger.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("import %s not found", args[0])
		}
		return fmt.Errorf("failed to delete import: %w", err)
	}
	cmd.Printf("Deleted import %s\n", args[0])
	return nil
}
