package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations over accounts and
// records. Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// ResolveOrCreateAccount upserts the account identified by tgID inside a
	// transaction. A non-empty username overwrites the stored handle.
	// New accounts start with notifications enabled.
	ResolveOrCreateAccount(ctx context.Context, tgID int64, username string) (*Account, error)

	// AccountByTelegramID looks up an account by platform user id.
	// Returns ErrNotFound when absent; never creates an account.
	AccountByTelegramID(ctx context.Context, tgID int64) (*Account, error)

	// AccountByUsername looks up an account by handle (without the mention
	// prefix). Returns ErrNotFound when absent; never creates an account.
	AccountByUsername(ctx context.Context, username string) (*Account, error)

	// SetNotify updates the notification flag for the account identified by
	// tgID. Returns ErrNotFound when the account does not exist.
	SetNotify(ctx context.Context, tgID int64, enabled bool) error

	// CreateRecord upserts the author account and inserts the record in a
	// single transaction, so a record never exists without its account.
	// Returns ErrDuplicateRecord when identical text is already recorded.
	CreateRecord(ctx context.Context, authorTGID int64, authorUsername, text string) (*Record, error)

	// DeleteRecord deletes a record by id, scoped to the account owned by
	// ownerTGID. Deleting a record the caller does not own affects zero
	// rows and is not an error.
	DeleteRecord(ctx context.Context, recordID, ownerTGID int64) error

	// RecordsByOwner returns one insertion-ordered page of an account's
	// records together with the total record count.
	RecordsByOwner(ctx context.Context, accountID int64, page, pageSize int) ([]RecordWithOwner, int, error)

	// SearchRecords returns up to limit records whose text contains keyword,
	// as a flat result set.
	SearchRecords(ctx context.Context, keyword string, limit int) ([]RecordWithOwner, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ResolveOrCreateAccount upserts the account identified by tgID.
func (s *sqlxStore) ResolveOrCreateAccount(ctx context.Context, tgID int64, username string) (*Account, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	account, err := upsertAccountTx(ctx, tx, tgID, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error upserting account", "tg_id", tgID, "error", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "Account resolved", "tg_id", tgID, "account_id", account.ID)
	return account, nil
}

// AccountByTelegramID looks up an account by platform user id.
func (s *sqlxStore) AccountByTelegramID(ctx context.Context, tgID int64) (*Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account,
		`SELECT id, created_at, updated_at, tg_id, username, notify FROM accounts WHERE tg_id = ?;`, tgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query account (tg_id %d): %w", tgID, err)
	}
	return &account, nil
}

// AccountByUsername looks up an account by handle.
func (s *sqlxStore) AccountByUsername(ctx context.Context, username string) (*Account, error) {
	var account Account
	err := s.db.GetContext(ctx, &account,
		`SELECT id, created_at, updated_at, tg_id, username, notify FROM accounts WHERE username = ?;`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query account (username %q): %w", username, err)
	}
	return &account, nil
}

// SetNotify updates the notification flag for an account.
func (s *sqlxStore) SetNotify(ctx context.Context, tgID int64, enabled bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET notify = ?, updated_at = ? WHERE tg_id = ?;`,
		enabled, time.Now().UTC(), tgID)
	if err != nil {
		return fmt.Errorf("failed to update notify flag (tg_id %d): %w", tgID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}

	s.logger.DebugContext(ctx, "Notify flag updated", "tg_id", tgID, "enabled", enabled)
	return nil
}

// CreateRecord upserts the author account and inserts the record atomically.
func (s *sqlxStore) CreateRecord(ctx context.Context, authorTGID int64, authorUsername, text string) (*Record, error) {
	if text == "" {
		return nil, fmt.Errorf("record must have non-empty text")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollback(ctx, tx)

	account, err := upsertAccountTx(ctx, tx, authorTGID, authorUsername)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error upserting author account", "tg_id", authorTGID, "error", err)
		return nil, err
	}

	record := &Record{
		AccountID: account.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO records (account_id, text, created_at) VALUES (?, ?, ?);`,
		record.AccountID, record.Text, record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRecord
		}
		s.logger.ErrorContext(ctx, "Error inserting record", "account_id", account.ID, "error", err)
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving record",
			"account_id", account.ID, "error", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.DebugContext(ctx, "Record saved successfully",
		"record_id", record.ID, "account_id", account.ID)
	return record, nil
}

// DeleteRecord deletes a record by id, scoped to the owner's account.
func (s *sqlxStore) DeleteRecord(ctx context.Context, recordID, ownerTGID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM records
         WHERE id = ? AND account_id = (SELECT id FROM accounts WHERE tg_id = ?);`,
		recordID, ownerTGID)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", recordID, err)
	}

	if affected, err := result.RowsAffected(); err == nil {
		s.logger.DebugContext(ctx, "Record delete executed",
			"record_id", recordID, "owner_tg_id", ownerTGID, "affected", affected)
	}
	return nil
}

// RecordsByOwner returns one page of an account's records plus the total count.
func (s *sqlxStore) RecordsByOwner(ctx context.Context, accountID int64, page, pageSize int) ([]RecordWithOwner, int, error) {
	if pageSize <= 0 {
		return nil, 0, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if page < 0 {
		page = 0
	}

	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM records WHERE account_id = ?;`, accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count records (account %d): %w", accountID, err)
	}

	var items []RecordWithOwner
	err = s.db.SelectContext(ctx, &items,
		`SELECT r.id, r.created_at, r.account_id, r.text, r.hot,
                a.tg_id AS owner_tg_id, a.username AS owner_username, a.notify AS owner_notify
         FROM records r
         JOIN accounts a ON a.id = r.account_id
         WHERE r.account_id = ?
         ORDER BY r.id
         LIMIT ? OFFSET ?;`,
		accountID, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records (account %d): %w", accountID, err)
	}

	return items, total, nil
}

// SearchRecords returns up to limit records whose text contains keyword.
func (s *sqlxStore) SearchRecords(ctx context.Context, keyword string, limit int) ([]RecordWithOwner, error) {
	if limit <= 0 {
		limit = 50
	}

	var items []RecordWithOwner
	err := s.db.SelectContext(ctx, &items,
		`SELECT r.id, r.created_at, r.account_id, r.text, r.hot,
                a.tg_id AS owner_tg_id, a.username AS owner_username, a.notify AS owner_notify
         FROM records r
         JOIN accounts a ON a.id = r.account_id
         WHERE r.text LIKE ? ESCAPE '\'
         ORDER BY r.id
         LIMIT ?;`,
		"%"+escapeLike(keyword)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search records (keyword %q): %w", keyword, err)
	}

	return items, nil
}

// RunMaintenance performs database maintenance tasks.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `VACUUM;`); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `ANALYZE;`); err != nil {
		return fmt.Errorf("failed to analyze database: %w", err)
	}
	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}

// upsertAccountTx resolves or creates an account inside an open transaction.
// A non-empty username overwrites the stored handle on existing accounts.
func upsertAccountTx(ctx context.Context, tx *sqlx.Tx, tgID int64, username string) (*Account, error) {
	var account Account
	err := tx.GetContext(ctx, &account,
		`SELECT id, created_at, updated_at, tg_id, username, notify FROM accounts WHERE tg_id = ?;`, tgID)

	switch {
	case err == nil:
		if username != "" && username != account.Username {
			account.Username = username
			account.UpdatedAt = time.Now().UTC()
			_, err = tx.ExecContext(ctx,
				`UPDATE accounts SET username = ?, updated_at = ? WHERE id = ?;`,
				account.Username, account.UpdatedAt, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to update account handle: %w", err)
			}
		}
		return &account, nil

	case errors.Is(err, sql.ErrNoRows):
		now := time.Now().UTC()
		account = Account{
			CreatedAt:  now,
			UpdatedAt:  now,
			TelegramID: tgID,
			Username:   username,
			Notify:     true,
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (created_at, updated_at, tg_id, username, notify) VALUES (?, ?, ?, ?, ?);`,
			account.CreatedAt, account.UpdatedAt, account.TelegramID, account.Username, account.Notify)
		if err != nil {
			return nil, fmt.Errorf("failed to insert account: %w", err)
		}
		if id, err := result.LastInsertId(); err == nil {
			account.ID = id
		}
		return &account, nil

	default:
		return nil, fmt.Errorf("failed to query account (tg_id %d): %w", tgID, err)
	}
}

// rollback discards tx, ignoring the error produced when the transaction
// was already committed.
func (s *sqlxStore) rollback(ctx context.Context, tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.WarnContext(ctx, "Error rolling back transaction", "error", err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
