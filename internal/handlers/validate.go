// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxBodyLen    = 100_000
	maxNameLen    = 200
	maxEmailLen   = 320
	maxPhoneLen   = 40
	maxSubjectLen = 300
	maxMessageLen = 10_000
)

// validateService checks service detail and post form inputs and
// returns the first error found.
func validateService(title, slug string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if slug == "" {
		return "Key is required."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Key is too long (max 300 characters)."
	}
	return ""
}

// validateContent checks blog post form inputs and returns the first
// error found.
func validateContent(title, slug, body string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}

// validateContactForm checks the public contact form and returns every
// problem found, so the visitor can fix them all at once.
func validateContactForm(name, email, phone, subject, message string) []string {
	var errs []string

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, "Name is required.")
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs = append(errs, "Name is too long (max 200 characters).")
	}

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs = append(errs, "Email is required.")
	case utf8.RuneCountInString(email) > maxEmailLen:
		errs = append(errs, "Email is too long.")
	case !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		errs = append(errs, "Email address looks invalid.")
	}

	if utf8.RuneCountInString(phone) > maxPhoneLen {
		errs = append(errs, "Phone number is too long.")
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		errs = append(errs, "Subject is too long (max 300 characters).")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		errs = append(errs, "Message is required.")
	} else if utf8.RuneCountInString(message) > maxMessageLen {
		errs = append(errs, "Message is too long (max 10,000 characters).")
	}

	return errs
}
