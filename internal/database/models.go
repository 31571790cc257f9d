package database

import (
	"time"
)

// Account represents a Telegram user known to the bot, either because they
// interacted with it or because one of their messages was forwarded to it.
type Account struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	TelegramID int64  `db:"tg_id"`
	Username   string `db:"username"`
	Notify     bool   `db:"notify"`
}

// Record is a quote attributed to its original author, not to whoever
// forwarded it. Text is unique across all records.
type Record struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	AccountID int64  `db:"account_id"`
	Text      string `db:"text"`
	Hot       int64  `db:"hot"`
}

// RecordWithOwner is a record joined with its owning account, as returned
// by listing and search queries.
type RecordWithOwner struct {
	Record

	OwnerTelegramID int64  `db:"owner_tg_id"`
	OwnerUsername   string `db:"owner_username"`
	OwnerNotify     bool   `db:"owner_notify"`
}
