package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// fakeTx simulates the duplicate check and the unique-index conflict.
type fakeTx struct {
	existing map[string]bool
	inserted map[string]bool
	failName string
}

func newFakeTx(existing ...string) *fakeTx {
	tx := &fakeTx{existing: map[string]bool{}, inserted: map[string]bool{}}
	for _, key := range existing {
		tx.existing[key] = true
	}
	return tx
}

func identityKey(name, city, state string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(city) + "|" + state
}

func (tx *fakeTx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	exists, ok := dest.(*bool)
	if !ok {
		return fmt.Errorf("unexpected dest type %T", dest)
	}
	key := identityKey(args[0].(string), args[1].(string), args[2].(string))
	*exists = tx.existing[key] || tx.inserted[key]
	return nil
}

func (tx *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	name := args[0].(string)
	if name == tx.failName {
		return nil, errors.New("boom")
	}
	key := identityKey(name, args[3].(string), args[4].(string))
	if tx.existing[key] || tx.inserted[key] {
		return fakeResult{rows: 0}, nil
	}
	tx.inserted[key] = true
	return fakeResult{rows: 1}, nil
}

func TestImportRowsSkipsIncompleteRecords(t *testing.T) {
	tx := newFakeTx()
	records := []Record{
		{Name: "", State: "KS", City: "Topeka"},
		{Name: "No State Co", State: "", City: "Omaha"},
		{Name: "Acme Transload", State: "KS", City: "Topeka"},
	}

	stats, err := importRows(context.Background(), tx, 1, records, Options{Source: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("importRows returned error: %v", err)
	}
	if stats.Imported != 1 || stats.Skipped != 2 {
		t.Errorf("stats = %+v; want 1 imported, 2 skipped", stats)
	}
}

func TestImportRowsReimportInsertsNothing(t *testing.T) {
	records := []Record{
		{Name: "Acme Transload", State: "KS", City: "Topeka"},
		{Name: "Prairie Elevator", State: "ND", City: "Fargo"},
	}

	tx := newFakeTx()
	first, err := importRows(context.Background(), tx, 1, records, Options{Source: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Imported != 2 {
		t.Fatalf("first import = %+v; want 2 imported", first)
	}

	second, err := importRows(context.Background(), tx, 1, records, Options{Source: "test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Imported != 0 || second.Skipped != 2 {
		t.Errorf("second import = %+v; want 0 imported, 2 skipped", second)
	}
}

func TestImportRowsForceStillDeduplicatedByIndex(t *testing.T) {
	tx := newFakeTx(identityKey("Acme Transload", "Topeka", "KS"))
	records := []Record{{Name: "Acme Transload", State: "KS", City: "Topeka"}}

	// Force bypasses the pre-check; the unique index still rejects the row.
	stats, err := importRows(context.Background(), tx, 1, records, Options{Force: true}, zap.NewNop())
	if err != nil {
		t.Fatalf("importRows returned error: %v", err)
	}
	if stats.Imported != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v; want 0 imported, 1 skipped", stats)
	}
}

func TestImportRowsAbortsOnRowError(t *testing.T) {
	tx := newFakeTx()
	tx.failName = "Bad Row Inc"
	records := []Record{
		{Name: "Acme Transload", State: "KS", City: "Topeka"},
		{Name: "Bad Row Inc", State: "NE", City: "Omaha"},
		{Name: "Never Reached", State: "IA", City: "Ames"},
	}

	_, err := importRows(context.Background(), tx, 1, records, Options{}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error from failing row")
	}
	if tx.inserted[identityKey("Never Reached", "Ames", "IA")] {
		t.Error("rows after the failure must not be processed")
	}
}
