package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, the standard navbar, and starter page sections. The admin
// will be prompted to set up 2FA on first login (totp_enabled = false).
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@contentsolution.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedNavbar(db); err != nil {
		return err
	}
	if err := seedSections(db); err != nil {
		return err
	}
	if err := seedSettings(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@contentsolution.local",
		"password", "admin",
	)

	return nil
}

// seedNavbar creates the default top-level navigation.
func seedNavbar(db *sql.DB) error {
	items := []struct {
		label    string
		href     string
		order    int
		isButton bool
	}{
		{"Home", "/", 1, false},
		{"About", "/about", 2, false},
		{"Services", "/services", 3, false},
		{"Blog", "/blog", 4, false},
		{"Contact", "/contact", 5, true},
	}
	for _, it := range items {
		_, err := db.Exec(`
			INSERT INTO navbar_items (label, href, sort_order, is_button, is_active)
			VALUES ($1, $2, $3, $4, TRUE)
		`, it.label, it.href, it.order, it.isButton)
		if err != nil {
			return fmt.Errorf("seed navbar %q: %w", it.label, err)
		}
	}
	return nil
}

// seedSections creates starter hero and CTA copy for the public pages.
func seedSections(db *sql.DB) error {
	sections := []struct {
		page, section, heading, subheading string
	}{
		{"home", "hero", "We build brands that work", "Design, print and web under one roof."},
		{"home", "cta", "Ready to start a project?", "Tell us what you need and we'll get back within a day."},
		{"about", "hero", "About us", "A small studio with big output."},
		{"services", "hero", "Our services", "Everything from business cards to full web platforms."},
		{"contact", "hero", "Get in touch", "We reply to every message."},
	}
	for i, s := range sections {
		_, err := db.Exec(`
			INSERT INTO page_sections (page, section, heading, subheading, sort_order)
			VALUES ($1, $2, $3, $4, $5)
		`, s.page, s.section, s.heading, s.subheading, i)
		if err != nil {
			return fmt.Errorf("seed section %s/%s: %w", s.page, s.section, err)
		}
	}
	return nil
}

// seedSettings writes the default site settings.
func seedSettings(db *sql.DB) error {
	settings := map[string]string{
		"site_name":    "Content Solution",
		"site_tagline": "Design. Print. Web.",
		"footer_text":  "",
	}
	for k, v := range settings {
		_, err := db.Exec(`
			INSERT INTO site_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, k, v)
		if err != nil {
			return fmt.Errorf("seed setting %q: %w", k, err)
		}
	}
	return nil
}
