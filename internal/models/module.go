// ABOUTME: Curriculum module catalog for the sponsorship outreach playbook
// ABOUTME: Fixed M1..M7 identifiers, display titles, and validation helpers
package models

import (
	"strconv"
	"strings"
)

// ModuleID identifies a curriculum module (M1..M7)
type ModuleID string

const (
	ModuleFoundation   ModuleID = "M1"
	ModuleTargets      ModuleID = "M2"
	ModuleContacts     ModuleID = "M3"
	ModuleOutreach     ModuleID = "M4"
	ModuleProposals    ModuleID = "M5"
	ModuleNegotiation  ModuleID = "M6"
	ModulePartnerships ModuleID = "M7"

	// DefaultModule is recommended when nothing else points anywhere
	DefaultModule = ModuleFoundation
)

// Module is one entry of the catalog
type Module struct {
	ID    ModuleID `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
}

// Catalog lists every module in curriculum order
var Catalog = []Module{
	{ID: ModuleFoundation, Title: "Foundation & Preparation"},
	{ID: ModuleTargets, Title: "Identifying Target Sponsors"},
	{ID: ModuleContacts, Title: "Finding the Right Contacts"},
	{ID: ModuleOutreach, Title: "Email Outreach Campaign"},
	{ID: ModuleProposals, Title: "Sponsorship Packages & Proposals"},
	{ID: ModuleNegotiation, Title: "Meeting & Negotiation"},
	{ID: ModulePartnerships, Title: "Closing & Maintaining Partnerships"},
}

// IsValid reports whether id is one of the catalog identifiers.
// Matching is exact: "m3" and " M3" are not valid.
func (id ModuleID) IsValid() bool {
	for _, m := range Catalog {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Title returns the display title, falling back to the default module's title
func (id ModuleID) Title() string {
	for _, m := range Catalog {
		if m.ID == id {
			return m.Title
		}
	}
	return Catalog[0].Title
}

// Number returns the numeric part of the id ("M5" -> 5), or 0 if malformed
func (id ModuleID) Number() int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(id), "M"))
	if err != nil || !strings.HasPrefix(string(id), "M") {
		return 0
	}
	return n
}

// ModuleFromNumber builds an id from its number ("3" or 3 -> "M3")
func ModuleFromNumber(n int) ModuleID {
	return ModuleID("M" + strconv.Itoa(n))
}

// Label renders the clickable-style reference used in assistant replies
func (id ModuleID) Label() string {
	return "**Module " + strconv.Itoa(id.Number()) + ": " + id.Title() + "**"
}
