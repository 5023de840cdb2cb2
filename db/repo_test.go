package db

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect test database")
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(conn)
}

// futureDay keeps validation-sensitive tests away from "today".
func futureDay(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
