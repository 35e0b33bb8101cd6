// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known page and section keys for page_sections rows. Pages may
// carry additional ad-hoc sections; these are the ones the default
// templates look up.
const (
	PageHome    = "home"
	PageAbout   = "about"
	PageService = "services"
	PageContact = "contact"

	SectionHero    = "hero"
	SectionCTA     = "cta"
	SectionProcess = "process"
	SectionIntro   = "intro"
)

// PageSection is one editable block of copy on a public page: a hero,
// a call-to-action, a process step. Sections are looked up by
// (page, section) and ordered by SortOrder within a page.
type PageSection struct {
	ID         uuid.UUID `json:"id"`
	Page       string    `json:"page"`
	Section    string    `json:"section"`
	Heading    string    `json:"heading"`
	Subheading string    `json:"subheading"`
	Body       string    `json:"body"`
	Image      string    `json:"image"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PageSections is a convenience index of sections by section key.
type PageSections map[string][]PageSection

// First returns the first section for a key, or a zero value if absent,
// so templates can render optional blocks without nil checks.
func (s PageSections) First(key string) PageSection {
	if list, ok := s[key]; ok && len(list) > 0 {
		return list[0]
	}
	return PageSection{}
}

// Has reports whether at least one section exists for the key.
func (s PageSections) Has(key string) bool {
	return len(s[key]) > 0
}
