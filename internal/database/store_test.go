package database_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/edgard/saidbot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestResolveOrCreateAccount(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.ResolveOrCreateAccount(ctx, 100, "alice")
	if err != nil {
		t.Fatalf("ResolveOrCreateAccount: %v", err)
	}
	if created.ID == 0 {
		t.Error("new account should have a store-assigned id")
	}
	if created.Username != "alice" {
		t.Errorf("Username = %q, want %q", created.Username, "alice")
	}
	if !created.Notify {
		t.Error("new account should have notifications enabled")
	}

	// Resolving again with a new handle keeps the identity and overwrites
	// the handle.
	resolved, err := store.ResolveOrCreateAccount(ctx, 100, "alice_renamed")
	if err != nil {
		t.Fatalf("ResolveOrCreateAccount (second): %v", err)
	}
	if resolved.ID != created.ID {
		t.Errorf("account id changed on resolve: %d != %d", resolved.ID, created.ID)
	}
	if resolved.Username != "alice_renamed" {
		t.Errorf("Username = %q, want %q", resolved.Username, "alice_renamed")
	}

	// An empty observed handle does not erase the stored one.
	resolved, err = store.ResolveOrCreateAccount(ctx, 100, "")
	if err != nil {
		t.Fatalf("ResolveOrCreateAccount (empty handle): %v", err)
	}
	if resolved.Username != "alice_renamed" {
		t.Errorf("empty handle overwrote stored one: %q", resolved.Username)
	}
}

func TestAccountLookups(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AccountByTelegramID(ctx, 42); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("AccountByTelegramID(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := store.AccountByUsername(ctx, "nobody"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("AccountByUsername(unknown) error = %v, want ErrNotFound", err)
	}

	if _, err := store.ResolveOrCreateAccount(ctx, 42, "bob"); err != nil {
		t.Fatalf("ResolveOrCreateAccount: %v", err)
	}

	byID, err := store.AccountByTelegramID(ctx, 42)
	if err != nil {
		t.Fatalf("AccountByTelegramID: %v", err)
	}
	byName, err := store.AccountByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("AccountByUsername: %v", err)
	}
	if byID.ID != byName.ID {
		t.Errorf("lookups disagree: %d != %d", byID.ID, byName.ID)
	}
}

func TestCreateRecordRejectsDuplicateText(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	record, err := store.CreateRecord(ctx, 7, "bob", "hello")
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if record.ID == 0 {
		t.Error("new record should have a store-assigned id")
	}

	// Author account is created as part of the same operation.
	author, err := store.AccountByTelegramID(ctx, 7)
	if err != nil {
		t.Fatalf("AccountByTelegramID: %v", err)
	}
	if record.AccountID != author.ID {
		t.Errorf("record owner = %d, want %d", record.AccountID, author.ID)
	}

	// Identical text is rejected distinctly, even for a different author.
	if _, err := store.CreateRecord(ctx, 7, "bob", "hello"); !errors.Is(err, database.ErrDuplicateRecord) {
		t.Errorf("duplicate from same author: error = %v, want ErrDuplicateRecord", err)
	}
	if _, err := store.CreateRecord(ctx, 8, "carol", "hello"); !errors.Is(err, database.ErrDuplicateRecord) {
		t.Errorf("duplicate from other author: error = %v, want ErrDuplicateRecord", err)
	}

	// The failed insert must not leave more than one record behind.
	_, total, err := store.RecordsByOwner(ctx, author.ID, 0, 25)
	if err != nil {
		t.Fatalf("RecordsByOwner: %v", err)
	}
	if total != 1 {
		t.Errorf("total records = %d, want 1", total)
	}
}

func TestDeleteRecordScopedToOwner(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	record, err := store.CreateRecord(ctx, 7, "bob", "keep me")
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	// A non-owner delete is a silent no-op.
	if err := store.DeleteRecord(ctx, record.ID, 999); err != nil {
		t.Fatalf("DeleteRecord (non-owner): %v", err)
	}
	_, total, err := store.RecordsByOwner(ctx, record.AccountID, 0, 25)
	if err != nil {
		t.Fatalf("RecordsByOwner: %v", err)
	}
	if total != 1 {
		t.Errorf("record deleted by non-owner, total = %d", total)
	}

	if err := store.DeleteRecord(ctx, record.ID, 7); err != nil {
		t.Fatalf("DeleteRecord (owner): %v", err)
	}
	_, total, err = store.RecordsByOwner(ctx, record.AccountID, 0, 25)
	if err != nil {
		t.Fatalf("RecordsByOwner: %v", err)
	}
	if total != 0 {
		t.Errorf("record not deleted by owner, total = %d", total)
	}
}

func TestRecordsByOwnerPagination(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if _, err := store.CreateRecord(ctx, 7, "bob", fmt.Sprintf("quote %02d", i)); err != nil {
			t.Fatalf("CreateRecord %d: %v", i, err)
		}
	}

	author, err := store.AccountByTelegramID(ctx, 7)
	if err != nil {
		t.Fatalf("AccountByTelegramID: %v", err)
	}

	first, total, err := store.RecordsByOwner(ctx, author.ID, 0, 25)
	if err != nil {
		t.Fatalf("RecordsByOwner page 0: %v", err)
	}
	if total != 30 {
		t.Errorf("total = %d, want 30", total)
	}
	if len(first) != 25 {
		t.Errorf("page 0 size = %d, want 25", len(first))
	}
	if first[0].Text != "quote 00" {
		t.Errorf("page 0 starts with %q, want insertion order", first[0].Text)
	}
	if first[0].OwnerUsername != "bob" {
		t.Errorf("owner username = %q, want %q", first[0].OwnerUsername, "bob")
	}

	second, total, err := store.RecordsByOwner(ctx, author.ID, 1, 25)
	if err != nil {
		t.Fatalf("RecordsByOwner page 1: %v", err)
	}
	if total != 30 {
		t.Errorf("total = %d, want 30", total)
	}
	if len(second) != 5 {
		t.Errorf("page 1 size = %d, want 5", len(second))
	}
	if second[0].Text != "quote 25" {
		t.Errorf("page 1 starts with %q, want %q", second[0].Text, "quote 25")
	}
}

func TestSetNotify(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetNotify(ctx, 42, false); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("SetNotify(unknown) error = %v, want ErrNotFound", err)
	}

	if _, err := store.CreateRecord(ctx, 42, "bob", "muted later"); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if err := store.SetNotify(ctx, 42, false); err != nil {
		t.Fatalf("SetNotify: %v", err)
	}

	account, err := store.AccountByTelegramID(ctx, 42)
	if err != nil {
		t.Fatalf("AccountByTelegramID: %v", err)
	}
	if account.Notify {
		t.Error("notify flag should be disabled")
	}

	// Muting does not delete existing records.
	_, total, err := store.RecordsByOwner(ctx, account.ID, 0, 25)
	if err != nil {
		t.Fatalf("RecordsByOwner: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestSearchRecords(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	seeds := []string{"the quick brown fox", "lazy dog", "quick thinking", "100% done"}
	for i, text := range seeds {
		if _, err := store.CreateRecord(ctx, int64(i+1), fmt.Sprintf("user%d", i+1), text); err != nil {
			t.Fatalf("CreateRecord %q: %v", text, err)
		}
	}

	items, err := store.SearchRecords(ctx, "quick", 50)
	if err != nil {
		t.Fatalf("SearchRecords: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("search hits = %d, want 2", len(items))
	}

	// LIKE wildcards in the keyword are treated literally.
	items, err = store.SearchRecords(ctx, "100%", 50)
	if err != nil {
		t.Fatalf("SearchRecords (literal percent): %v", err)
	}
	if len(items) != 1 || items[0].Text != "100% done" {
		t.Errorf("literal wildcard search = %+v, want the single exact match", items)
	}

	items, err = store.SearchRecords(ctx, "quick", 1)
	if err != nil {
		t.Fatalf("SearchRecords (limited): %v", err)
	}
	if len(items) != 1 {
		t.Errorf("limited search hits = %d, want 1", len(items))
	}
}
