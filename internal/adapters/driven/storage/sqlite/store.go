package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// timeLayout has a fixed-width fraction so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite database holding the import ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ordersnap/data/ledger.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ordersnap", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ledger.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// OrderStore returns an OrderStore interface backed by this store.
func (s *Store) OrderStore() driven.OrderStore {
	return &orderStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Order Store ====================

// orderStore implements driven.OrderStore.
type orderStore struct {
	store *Store
}

var _ driven.OrderStore = (*orderStore)(nil)

// SaveImport stores a batch with its orders and items in one transaction.
// An existing batch with the same ID is replaced.
func (s *orderStore) SaveImport(ctx context.Context, batch *domain.ImportBatch) error {
	if batch == nil || batch.ID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, batch.ID); err != nil {
		return fmt.Errorf("replacing import: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (id, source_name, format, imported_at)
		VALUES (?, ?, ?, ?)
	`, batch.ID, batch.SourceName, string(batch.Format), formatTime(batch.ImportedAt))
	if err != nil {
		return fmt.Errorf("inserting import: %w", err)
	}

	for i := range batch.Orders {
		if err := insertOrder(ctx, tx, batch.ID, i, &batch.Orders[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, importID string, position int, order *domain.ParsedOrder) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (import_id, position, order_number, order_date, total_amount, supplier, seller_name, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, importID, position, order.OrderNumber, formatTime(order.OrderDate), order.TotalAmount,
		order.Supplier, order.SellerName, string(order.Status))
	if err != nil {
		return fmt.Errorf("inserting order %s: %w", order.OrderNumber, err)
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading order id: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]

		specsJSON, err := json.Marshal(item.Specifications)
		if err != nil {
			return fmt.Errorf("marshalling specifications: %w", err)
		}
		componentJSON, err := json.Marshal(item.ParsedComponent)
		if err != nil {
			return fmt.Errorf("marshalling component: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, position, product_title, quantity, unit_price, total_price,
				image_url, local_image_path, product_url, seller_name, specifications, parsed_component)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, orderID, i, item.ProductTitle, item.Quantity, item.UnitPrice, item.TotalPrice,
			item.ImageURL, item.LocalImagePath, item.ProductURL, item.SellerName,
			nullableJSON(specsJSON), nullableJSON(componentJSON))
		if err != nil {
			return fmt.Errorf("inserting item %q: %w", item.ProductTitle, err)
		}
	}

	return nil
}

// GetImport retrieves a batch by ID.
func (s *orderStore) GetImport(ctx context.Context, id string) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	var format, importedAt string

	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_name, format, imported_at FROM imports WHERE id = ?
	`, id).Scan(&batch.ID, &batch.SourceName, &format, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying import: %w", err)
	}

	batch.Format = domain.SnapshotFormat(format)
	batch.ImportedAt = parseTime(importedAt)

	orders, err := s.loadOrders(ctx, id)
	if err != nil {
		return nil, err
	}
	batch.Orders = orders
	return &batch, nil
}

// ListImports returns summaries of all batches, newest first.
func (s *orderStore) ListImports(ctx context.Context) ([]domain.ImportSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT i.id, i.source_name, i.format, i.imported_at,
			(SELECT COUNT(*) FROM orders o WHERE o.import_id = i.id),
			(SELECT COUNT(*) FROM order_items it JOIN orders o ON it.order_id = o.id WHERE o.import_id = i.id)
		FROM imports i
		ORDER BY i.imported_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ImportSummary
	for rows.Next() {
		var sum domain.ImportSummary
		var format, importedAt string
		if err := rows.Scan(&sum.ID, &sum.SourceName, &format, &importedAt, &sum.OrderCount, &sum.ItemCount); err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		sum.Format = domain.SnapshotFormat(format)
		sum.ImportedAt = parseTime(importedAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// ListOrders returns the orders of a batch.
func (s *orderStore) ListOrders(ctx context.Context, batchID string) ([]domain.ParsedOrder, error) {
	var exists int
	err := s.store.db.QueryRowContext(ctx, `SELECT 1 FROM imports WHERE id = ?`, batchID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying import: %w", err)
	}
	return s.loadOrders(ctx, batchID)
}

// DeleteImport removes a batch; orders and items cascade.
func (s *orderStore) DeleteImport(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM imports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *orderStore) loadOrders(ctx context.Context, importID string) ([]domain.ParsedOrder, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, order_number, order_date, total_amount, supplier, seller_name, status
		FROM orders WHERE import_id = ? ORDER BY position
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}

	var orders []domain.ParsedOrder
	var ids []int64
	for rows.Next() {
		var order domain.ParsedOrder
		var id int64
		var orderDate, status string
		if err := rows.Scan(&id, &order.OrderNumber, &orderDate, &order.TotalAmount,
			&order.Supplier, &order.SellerName, &status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		order.OrderDate = parseTime(orderDate)
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, id := range ids {
		items, err := s.loadItems(ctx, id)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *orderStore) loadItems(ctx context.Context, orderID int64) ([]domain.ParsedOrderItem, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT product_title, quantity, unit_price, total_price, image_url, local_image_path,
			product_url, seller_name, specifications, parsed_component
		FROM order_items WHERE order_id = ? ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []domain.ParsedOrderItem
	for rows.Next() {
		var item domain.ParsedOrderItem
		var specsJSON, componentJSON sql.NullString
		if err := rows.Scan(&item.ProductTitle, &item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&item.ImageURL, &item.LocalImagePath, &item.ProductURL, &item.SellerName,
			&specsJSON, &componentJSON); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if specsJSON.Valid {
			if err := json.Unmarshal([]byte(specsJSON.String), &item.Specifications); err != nil {
				return nil, fmt.Errorf("unmarshalling specifications: %w", err)
			}
		}
		if componentJSON.Valid {
			var component domain.ParsedComponent
			if err := json.Unmarshal([]byte(componentJSON.String), &component); err != nil {
				return nil, fmt.Errorf("unmarshalling component: %w", err)
			}
			item.ParsedComponent = &component
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// nullableJSON stores JSON null as SQL NULL.
func nullableJSON(data []byte) any {
	if string(data) == jsonNull {
		return nil
	}
	return string(data)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
