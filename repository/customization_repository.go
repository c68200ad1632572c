package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bracelet-customizer/db"
	"bracelet-customizer/models"
)

// CustomizationRepository handles database operations for bracelet customizations
type CustomizationRepository struct {
	conn   *sql.DB
	driver string
}

// NewCustomizationRepository creates a new CustomizationRepository
func NewCustomizationRepository(conn *sql.DB, driver string) *CustomizationRepository {
	return &CustomizationRepository{conn: conn, driver: driver}
}

// Ensure CustomizationRepository implements CustomizationRepositoryInterface
var _ CustomizationRepositoryInterface = (*CustomizationRepository)(nil)

const customizationColumns = `id, session_id, product_id, word, letter_color_id, size,
		       selected_charms, computed_price, preview_image_url, created_at`

func (r *CustomizationRepository) q(query string) string {
	return db.Rebind(r.driver, query)
}

// Save inserts the record or replaces the one stored for its session
func (r *CustomizationRepository) Save(ctx context.Context, record *models.CustomizationRecord) error {
	log.Printf("💾 Save: Storing customization id=%s session=%s product=%s", record.ID, record.SessionID, record.ProductID)

	charms := record.SelectedCharms
	if charms == nil {
		charms = []models.CharmSnapshot{}
	}
	charmsJSON, err := json.Marshal(charms)
	if err != nil {
		return fmt.Errorf("failed to encode charms: %w", err)
	}

	query := `
		INSERT INTO bracelet_customizations (
			session_id, id, product_id, word, letter_color_id, size,
			selected_charms, computed_price, preview_image_url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO UPDATE SET
			id = EXCLUDED.id,
			product_id = EXCLUDED.product_id,
			word = EXCLUDED.word,
			letter_color_id = EXCLUDED.letter_color_id,
			size = EXCLUDED.size,
			selected_charms = EXCLUDED.selected_charms,
			computed_price = EXCLUDED.computed_price,
			preview_image_url = EXCLUDED.preview_image_url,
			created_at = EXCLUDED.created_at
	`
	_, err = r.conn.ExecContext(ctx, r.q(query),
		record.SessionID,
		record.ID,
		record.ProductID,
		record.Word,
		record.LetterColorID,
		record.Size,
		string(charmsJSON),
		record.ComputedPrice,
		record.PreviewImageURL,
		toMillis(record.CreatedAt),
	)
	if err != nil {
		log.Printf("❌ Save: Error storing customization: %v", err)
		return fmt.Errorf("failed to save customization: %w", err)
	}

	log.Printf("✅ Save: Stored customization id=%s", record.ID)
	return nil
}

// GetBySession returns the current record for a session, optionally restricted to a product
func (r *CustomizationRepository) GetBySession(ctx context.Context, sessionID, productID string) (*models.CustomizationRecord, error) {
	query := `SELECT ` + customizationColumns + ` FROM bracelet_customizations WHERE session_id = $1`
	args := []interface{}{sessionID}
	if productID != "" {
		query += ` AND product_id = $2`
		args = append(args, productID)
	}

	record, err := scanCustomization(r.conn.QueryRowContext(ctx, r.q(query), args...))
	if err != nil {
		return nil, r.lookupError("GetBySession", sessionID, err)
	}
	return record, nil
}

// GetByIDOrSession resolves a key that may be either a record id or a session id
func (r *CustomizationRepository) GetByIDOrSession(ctx context.Context, key string) (*models.CustomizationRecord, error) {
	query := `SELECT ` + customizationColumns + `
		FROM bracelet_customizations
		WHERE id = $1 OR session_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	record, err := scanCustomization(r.conn.QueryRowContext(ctx, r.q(query), key, key))
	if err != nil {
		return nil, r.lookupError("GetByIDOrSession", key, err)
	}
	return record, nil
}

// SetPreviewImage attaches a preview URL to a record
func (r *CustomizationRepository) SetPreviewImage(ctx context.Context, id, url string) error {
	query := `UPDATE bracelet_customizations SET preview_image_url = $1 WHERE id = $2`
	res, err := r.conn.ExecContext(ctx, r.q(query), url, id)
	if err != nil {
		log.Printf("❌ SetPreviewImage: Error updating id=%s: %v", id, err)
		return fmt.Errorf("failed to update preview image: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts records, sessions and products in the range
func (r *CustomizationRepository) Stats(ctx context.Context, tr TimeRange) (*models.CustomizationStats, error) {
	where, args := rangeClause(tr)
	query := `SELECT COUNT(*), COUNT(DISTINCT session_id), COUNT(DISTINCT product_id)
		FROM bracelet_customizations` + where

	var stats models.CustomizationStats
	err := r.conn.QueryRowContext(ctx, r.q(query), args...).Scan(
		&stats.TotalCustomizations,
		&stats.UniqueSessions,
		&stats.UniqueProducts,
	)
	if err != nil {
		log.Printf("❌ Stats: Error counting customizations: %v", err)
		return nil, fmt.Errorf("failed to count customizations: %w", err)
	}
	return &stats, nil
}

// List returns records in the range, newest first
func (r *CustomizationRepository) List(ctx context.Context, tr TimeRange) ([]models.CustomizationRecord, error) {
	where, args := rangeClause(tr)
	query := `SELECT ` + customizationColumns + ` FROM bracelet_customizations` + where + ` ORDER BY created_at DESC, id ASC`

	rows, err := r.conn.QueryContext(ctx, r.q(query), args...)
	if err != nil {
		log.Printf("❌ List: Error querying customizations: %v", err)
		return nil, fmt.Errorf("failed to query customizations: %w", err)
	}
	defer rows.Close()

	records := []models.CustomizationRecord{}
	for rows.Next() {
		record, err := scanCustomization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customization: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customizations: %w", err)
	}
	return records, nil
}

// DeleteOlderThan removes records created before cutoff and returns how many went
func (r *CustomizationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM bracelet_customizations WHERE created_at < $1`
	res, err := r.conn.ExecContext(ctx, r.q(query), toMillis(cutoff))
	if err != nil {
		log.Printf("❌ DeleteOlderThan: Error deleting customizations: %v", err)
		return 0, fmt.Errorf("failed to delete customizations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	log.Printf("✅ DeleteOlderThan: Removed %d customizations created before %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}

func (r *CustomizationRepository) lookupError(op, key string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		log.Printf("🔍 %s: No customization for %s", op, key)
		return ErrNotFound
	}
	log.Printf("❌ %s: Error fetching customization %s: %v", op, key, err)
	return fmt.Errorf("failed to fetch customization: %w", err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomization(row rowScanner) (*models.CustomizationRecord, error) {
	var record models.CustomizationRecord
	var charmsJSON string
	var createdAt int64
	err := row.Scan(
		&record.ID,
		&record.SessionID,
		&record.ProductID,
		&record.Word,
		&record.LetterColorID,
		&record.Size,
		&charmsJSON,
		&record.ComputedPrice,
		&record.PreviewImageURL,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(charmsJSON), &record.SelectedCharms); err != nil {
		return nil, fmt.Errorf("failed to decode charms: %w", err)
	}
	if record.SelectedCharms == nil {
		record.SelectedCharms = []models.CharmSnapshot{}
	}
	record.CreatedAt = fromMillis(createdAt)
	return &record, nil
}

// rangeClause builds a WHERE clause over created_at with numbered placeholders
func rangeClause(tr TimeRange) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if !tr.From.IsZero() {
		args = append(args, toMillis(tr.From))
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !tr.To.IsZero() {
		args = append(args, toMillis(tr.To))
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
