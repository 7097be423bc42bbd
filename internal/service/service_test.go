package service

import (
	"database/sql"
	"testing"

	"github.com/mlapinski/openmemo/internal/db"
)

func openServiceTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}
