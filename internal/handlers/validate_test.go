// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidateService(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		slug      string
		wantError bool
	}{
		{"valid", "Web Development", "web-development", false},
		{"empty title", "", "web-development", true},
		{"whitespace title", "   ", "web-development", true},
		{"title too long", strings.Repeat("a", 301), "slug", true},
		{"empty key", "Web Development", "", true},
		{"key too long", "Web Development", strings.Repeat("a", 301), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateService(tt.title, tt.slug)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		slug      string
		body      string
		wantError bool
	}{
		{"valid", "My Title", "my-title", "Body text", false},
		{"empty title", "", "slug", "body", true},
		{"whitespace title", "   ", "slug", "body", true},
		{"title too long", strings.Repeat("a", 301), "slug", "body", true},
		{"slug too long", "title", strings.Repeat("a", 301), "body", true},
		{"body too long", "title", "slug", strings.Repeat("a", 100_001), true},
		{"empty body allowed", "title", "slug", "", false},
		{"empty slug allowed", "title", "", "body", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateContent(tt.title, tt.slug, tt.body)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateContactForm(t *testing.T) {
	tests := []struct {
		name     string
		fields   [5]string // name, email, phone, subject, message
		wantErrs int
	}{
		{"valid", [5]string{"Jo", "jo@example.com", "+40 700 000 000", "Hi", "A message."}, 0},
		{"valid minimal", [5]string{"Jo", "jo@example.com", "", "", "A message."}, 0},
		{"all required missing", [5]string{"", "", "", "", ""}, 3},
		{"bad email", [5]string{"Jo", "not-an-email", "", "", "A message."}, 1},
		{"email at edges", [5]string{"Jo", "@example.com", "", "", "A message."}, 1},
		{"name too long", [5]string{strings.Repeat("a", 201), "jo@example.com", "", "", "msg"}, 1},
		{"phone too long", [5]string{"Jo", "jo@example.com", strings.Repeat("1", 41), "", "msg"}, 1},
		{"subject too long", [5]string{"Jo", "jo@example.com", "", strings.Repeat("a", 301), "msg"}, 1},
		{"message too long", [5]string{"Jo", "jo@example.com", "", "", strings.Repeat("a", 10_001)}, 1},
		{"collects multiple", [5]string{"", "not-an-email", "", "", ""}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateContactForm(tt.fields[0], tt.fields[1], tt.fields[2], tt.fields[3], tt.fields[4])
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors %v, want %d", len(errs), errs, tt.wantErrs)
			}
		})
	}
}
