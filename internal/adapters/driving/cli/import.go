package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

var (
	importJSON       bool
	importSave       bool
	importNoDownload bool
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import orders from a saved order-history page",
	Long: `Reads an order-history page saved as an MHTML archive (.mhtml, .mht) or
plain HTML, extracts its orders and items, stores embedded images and
downloads the remaining item images.

Use --save to record the result in the import ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importJSON, "json", false, "output orders as JSON")
	importCmd.Flags().BoolVar(&importSave, "save", false, "record the import in the ledger")
	importCmd.Flags().BoolVar(&importNoDownload, "no-download", false, "do not download external images")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Import == nil {
		return errors.New("import service not configured")
	}

	snapshot, err := readSnapshot(args[0])
	if err != nil {
		return err
	}

	download := svc.DownloadImages && !importNoDownload
	progress := newProgressPrinter(cmd.ErrOrStderr())
	defer progress.Done()

	result, err := svc.Import(download).Import(cmd.Context(), snapshot, progress.Handle)
	if err != nil {
		return describeImportError(snapshot.Name, err)
	}
	progress.Done()

	var batch *domain.ImportBatch
	if importSave {
		if svc.Ledger == nil {
			return errors.New("ledger service not configured")
		}
		batch, err = svc.Ledger.Record(cmd.Context(), snapshot.Name, result)
		if err != nil {
			return fmt.Errorf("failed to record import: %w", err)
		}
	}

	if importJSON {
		return outputJSON(cmd.OutOrStdout(), result.Orders)
	}
	printImportSummary(cmd.OutOrStdout(), result, batch)
	return nil
}

func readSnapshot(path string) (domain.RawSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RawSnapshot{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return domain.RawSnapshot{Name: filepath.Base(path), Content: data}, nil
}

// describeImportError turns format errors into a message naming the cause.
func describeImportError(name string, err error) error {
	var dfe *domain.DocumentFormatError
	if !errors.As(err, &dfe) {
		return fmt.Errorf("import of %s failed: %w", name, err)
	}
	var hint string
	switch dfe.Reason {
	case domain.ReasonBoundaryNotFound:
		hint = "the archive has no MIME boundary; save the page again as a single file"
	case domain.ReasonHTMLPartNotFound:
		hint = "the archive does not contain the page HTML"
	case domain.ReasonHTMLTooShort:
		hint = "the page content is empty; wait for the order list to load before saving"
	case domain.ReasonNoOrdersFound:
		hint = "no orders were recognised on the page"
	}
	if hint == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%s: %s: %w", name, hint, err)
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printImportSummary(w io.Writer, result *driving.ImportResult, batch *domain.ImportBatch) {
	st := stylesFor(w)

	items := 0
	for i := range result.Orders {
		items += len(result.Orders[i].Items)
	}
	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("Imported %d orders with %d items (%s)", len(result.Orders), items, result.Format)))
	fmt.Fprintln(w)

	printOrders(w, st, result.Orders)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %d stored from archive, %d downloaded",
		st.Label.Render("Images:"), result.ImagesMaterialised, result.ImagesDownloaded)
	if result.ImagesFailed > 0 {
		fmt.Fprint(w, ", "+st.Warning.Render(fmt.Sprintf("%d failed", result.ImagesFailed)))
	}
	fmt.Fprintln(w)

	if batch != nil {
		fmt.Fprintf(w, "%s %s\n", st.Label.Render("Saved as batch:"), batch.ID)
	}
}

func printOrders(w io.Writer, st styles, orders []domain.ParsedOrder) {
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(w, "%s  %s  %s  $%.2f",
			st.Label.Render(o.OrderNumber),
			o.OrderDate.Format("2006-01-02"),
			st.status(o.Status),
			o.TotalAmount)
		if o.SellerName != "" {
			fmt.Fprint(w, "  "+st.Muted.Render(o.SellerName))
		}
		fmt.Fprintln(w)

		for j := range o.Items {
			item := &o.Items[j]
			fmt.Fprintf(w, "    %dx %s  $%.2f\n", item.Quantity, truncateText(item.ProductTitle, 60), item.TotalPrice)
			if c := item.ParsedComponent; c != nil && c.Category != "" {
				fmt.Fprintf(w, "       %s\n", st.Muted.Render(componentLine(c)))
			}
		}
	}
}

func componentLine(c *domain.ParsedComponent) string {
	line := c.Category
	if c.Subcategory != "" {
		line += " / " + c.Subcategory
	}
	if c.PackageType != "" {
		line += ", " + c.PackageType
	}
	return line
}
