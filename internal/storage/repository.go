// Package storage persists transactions and cards in SQLite and hands the
// projection pipeline immutable snapshots of both.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fatura/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction stores a validated transaction. The caller assigns the id.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, date, kind, category, description, amount_cents, owner_profile,
			paid_by_card, card_id, installment_count, current_installment, auto_generate_future
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date.Format(dateLayout), string(t.Kind), t.Category, t.Description,
		t.Amount.Cents, t.OwnerProfile,
		boolToInt(t.PaidByCard), t.CardID, t.InstallmentCount, t.CurrentInstallment,
		boolToInt(t.AutoGenerateFuture),
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"kind", t.Kind,
		"amount_cents", t.Amount.Cents,
		"paid_by_card", t.PaidByCard,
		"card_id", t.CardID)
	return nil
}

// SoftDeleteTransaction marks a transaction deleted without losing history.
func (r *SQLiteRepository) SoftDeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListTransactions returns all live transactions ordered by date then id.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, kind, category, description, amount_cents, owner_profile,
		       paid_by_card, card_id, installment_count, current_installment, auto_generate_future
		FROM transactions
		WHERE deleted_at IS NULL
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t                        core.Transaction
			date, kind               string
			paidByCard, autoGenerate int
		)
		if err := rows.Scan(&t.ID, &date, &kind, &t.Category, &t.Description,
			&t.Amount.Cents, &t.OwnerProfile, &paidByCard, &t.CardID,
			&t.InstallmentCount, &t.CurrentInstallment, &autoGenerate); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", date, err)
		}
		t.Date = core.Date{Time: parsed}
		t.Kind = core.Kind(kind)
		t.PaidByCard = paidByCard != 0
		t.AutoGenerateFuture = autoGenerate != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertCard creates or updates a card, keyed by its unique id/name.
func (r *SQLiteRepository) UpsertCard(ctx context.Context, c core.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (id, brand, owner_profile, closing_day, due_day)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			brand = excluded.brand,
			owner_profile = excluded.owner_profile,
			closing_day = excluded.closing_day,
			due_day = excluded.due_day,
			updated_at = CURRENT_TIMESTAMP`,
		c.ID, c.Brand, c.OwnerProfile, c.ClosingDay, c.DueDay)
	if err != nil {
		return fmt.Errorf("upsert card: %w", err)
	}

	slog.InfoContext(ctx, "Card saved",
		"id", c.ID,
		"closing_day", c.ClosingDay,
		"due_day", c.DueDay)
	return nil
}

// DeleteCard removes a card from the registry. Historical transactions keep
// referencing the id; projections fall back to the documented card profile.
func (r *SQLiteRepository) DeleteCard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListCards returns the card registry ordered by id.
func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, brand, owner_profile, closing_day, due_day
		FROM cards
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var out []core.Card
	for rows.Next() {
		var c core.Card
		if err := rows.Scan(&c.ID, &c.Brand, &c.OwnerProfile, &c.ClosingDay, &c.DueDay); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Snapshot returns fresh copies of the transaction set and card registry for
// one projection run. The pipeline never sees shared mutable state.
func (r *SQLiteRepository) Snapshot(ctx context.Context) ([]core.Transaction, []core.Card, error) {
	txns, err := r.ListTransactions(ctx)
	if err != nil {
		return nil, nil, err
	}
	cards, err := r.ListCards(ctx)
	if err != nil {
		return nil, nil, err
	}
	return txns, cards, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
