package link

import (
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// dryRunRepo builds a repository over a dry-run gorm session and captures
// the SQL each query generates
func dryRunRepo(t *testing.T) (Repository, *string) {
	t.Helper()

	database, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	var captured string
	err = database.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	return NewRepository(database), &captured
}

func TestFindLinksByUserIDOrdersByPositionThenCreation(t *testing.T) {
	repo, captured := dryRunRepo(t)

	if _, err := repo.FindLinksByUserID("user1"); err != nil {
		t.Fatalf("FindLinksByUserID: %v", err)
	}
	if !strings.Contains(*captured, "position ASC, created_at ASC") {
		t.Errorf("query %q lacks the created_at tie-break", *captured)
	}
}

func TestFindActiveLinksByUserIDOrdersByPositionThenCreation(t *testing.T) {
	repo, captured := dryRunRepo(t)

	if _, err := repo.FindActiveLinksByUserID("user1"); err != nil {
		t.Fatalf("FindActiveLinksByUserID: %v", err)
	}
	if !strings.Contains(*captured, "position ASC, created_at ASC") {
		t.Errorf("query %q lacks the created_at tie-break", *captured)
	}
}
