package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ordersnap/internal/classifier"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
	"github.com/custodia-labs/ordersnap/internal/core/services"
	"github.com/custodia-labs/ordersnap/internal/mhtml"
	"github.com/custodia-labs/ordersnap/internal/scraper"
)

const ordersPage = `<!DOCTYPE html>
<html><head><title>My Orders</title></head>
<body>
<div class="order-item">
  <span class="order-item-header-status-text">Shipped</span>
  <div>Order date: Mar 5, 2024</div>
  <div>Order ID: 8123456789012345</div>
  <span class="order-item-store-name">Best Parts Store</span>
  <div class="order-item-content-body">
    <span class="order-item-content-info-name" title="10K 0805 Resistor 100pcs">10K 0805 Resistor</span>
    <div class="order-item-content-info-number"><span class="notranslate">US $2.00</span> <span>x1</span></div>
  </div>
</div>
</body></html>`

// testServices holds the in-memory collaborators behind the CLI in tests.
type testServices struct {
	files  *memory.FileStore
	orders *memory.OrderStore
	config *memory.ConfigStore
}

// setupTestServices installs services backed by in-memory adapters and
// resets command flags when the test ends.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		files:  memory.NewFileStore(),
		orders: memory.NewOrderStore(),
		config: memory.NewConfigStore(),
	}

	defaults := domain.DefaultSettings()
	classify := classifier.New(defaults.Scraper.SourceName)
	extractor := scraper.New(classify, scraper.DefaultRules(), scraper.DefaultConfig())
	importer := services.NewImportService(mhtml.New(), extractor, ts.files, nil, defaults.Storage, defaults.Images)

	restore := setTestWiring(nil)
	SetServices(&Services{
		Import:   func(bool) driving.ImportService { return importer },
		Ledger:   services.NewLedgerService(ts.orders),
		Classify: services.NewClassifyService(classify),
		Settings: services.NewSettingsService(ts.config),
	})

	return ts, func() {
		restore()
		resetFlags()
	}
}

// setTestWiring replaces the wiring function and clears installed services.
func setTestWiring(w Wiring) func() {
	prevWire, prevCurrent := wire, current
	wire, current = w, nil
	return func() {
		wire, current = prevWire, prevCurrent
	}
}

func resetFlags() {
	importJSON, importSave, importNoDownload = false, false, false
	ordersJSON, classifyJSON = false, false
	watchExisting, watchNoDownload = false, false
	verbose, logLevel = false, ""
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_ServicesNotConfigured(t *testing.T) {
	restore := setTestWiring(nil)
	defer restore()

	_, err := execute(t, "classify", "resistor")

	assert.EqualError(t, err, "services not configured")
}

func TestRootCmd_WiringReceivesOptions(t *testing.T) {
	var got Options
	restore := setTestWiring(func(o Options) (*Services, error) {
		got = o
		return &Services{Classify: services.NewClassifyService(classifier.New(""))}, nil
	})
	defer restore()
	defer func() { options = Options{} }()

	_, err := execute(t, "--config-dir", "/tmp/cfg", "--storage-root", "/tmp/root", "classify", "10K resistor")

	require.NoError(t, err)
	assert.Equal(t, Options{ConfigDir: "/tmp/cfg", StorageRoot: "/tmp/root"}, got)
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "--log-level", "loud", "version")

	assert.ErrorContains(t, err, `unknown log level "loud"`)
}
