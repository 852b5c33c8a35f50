package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ordersnap/internal/adapters/driving/inbox"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

var (
	watchExisting   bool
	watchNoDownload bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import snapshots saved into a directory",
	Long: `Watches a directory and imports every .mhtml, .mht or .html file saved
into it, recording each import in the ledger. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also import snapshots already in the directory")
	watchCmd.Flags().BoolVar(&watchNoDownload, "no-download", false, "do not download external images")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Import == nil || svc.Ledger == nil {
		return errors.New("import and ledger services are required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := inbox.New(args[0], inbox.DefaultSettle)
	defer w.Close()

	importer := &inboxImporter{svc: svc, download: svc.DownloadImages && !watchNoDownload, out: cmd.OutOrStdout()}

	if watchExisting {
		paths, err := w.Existing()
		if err != nil {
			return err
		}
		for _, path := range paths {
			importer.importFile(ctx, path)
		}
	}

	paths, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s for snapshots (Ctrl+C to stop)\n", args[0])

	for path := range paths {
		importer.importFile(ctx, path)
	}
	cmd.Printf("Stopped after %d imports (%d failed)\n", importer.imported, importer.failed)
	return nil
}

// inboxImporter imports and records one snapshot at a time. Failures are
// reported and do not stop the watch.
type inboxImporter struct {
	svc      *Services
	download bool
	out      io.Writer

	imported int
	failed   int
}

func (i *inboxImporter) importFile(ctx context.Context, path string) {
	st := stylesFor(i.out)

	batch, err := i.importAndRecord(ctx, path)
	if err != nil {
		i.failed++
		fmt.Fprintf(i.out, "%s %v\n", st.Error.Render("failed:"), err)
		return
	}
	i.imported++
	fmt.Fprintf(i.out, "%s %s: %d orders, %d items (batch %s)\n",
		st.Success.Render("imported:"), batch.SourceName, len(batch.Orders), batch.ItemCount(), batch.ID)
}

func (i *inboxImporter) importAndRecord(ctx context.Context, path string) (*domain.ImportBatch, error) {
	snapshot, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	result, err := i.svc.Import(i.download).Import(ctx, snapshot, nil)
	if err != nil {
		return nil, describeImportError(snapshot.Name, err)
	}
	batch, err := i.svc.Ledger.Record(ctx, snapshot.Name, result)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s: %w", snapshot.Name, err)
	}
	return batch, nil
}
