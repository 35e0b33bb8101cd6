package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed should be callable safely — it creates data only when tables are
	// empty. We call it twice to verify idempotency. We don't clear the
	// database first because other test packages may be running
	// concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Verify admin user exists.
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'admin@contentsolution.local'").Scan(&userCount); err != nil {
		t.Fatalf("count admin users: %v", err)
	}
	if userCount < 1 {
		t.Errorf("expected at least 1 admin user, got %d", userCount)
	}

	// Verify the default navbar exists.
	var navCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM navbar_items").Scan(&navCount); err != nil {
		t.Fatalf("count navbar items: %v", err)
	}
	if navCount < 1 {
		t.Errorf("expected at least 1 navbar item, got %d", navCount)
	}

	// Verify starter page sections exist.
	var sectionCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM page_sections").Scan(&sectionCount); err != nil {
		t.Fatalf("count page sections: %v", err)
	}
	if sectionCount < 1 {
		t.Errorf("expected at least 1 page section, got %d", sectionCount)
	}
}
