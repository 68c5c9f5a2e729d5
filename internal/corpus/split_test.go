package corpus

import (
	"strings"
	"testing"

	"github.com/harper/tap-coach/internal/models"
)

func longText(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestSplit_HeadingsBecomeTitles(t *testing.T) {
	doc := "# Finding Contacts\n" + longText("linkedin", 20) + "\n\n## Decision Makers\n" + longText("csr", 40) + "\n"

	chunks := Split(models.ModuleContacts, "Finding the Right Contacts", doc)

	if len(chunks) != 2 {
		t.Fatalf("Split() returned %d chunks, want 2", len(chunks))
	}
	if chunks[0].Title != "Finding Contacts" {
		t.Errorf("chunks[0].Title = %q, want %q", chunks[0].Title, "Finding Contacts")
	}
	if chunks[1].Title != "Decision Makers" {
		t.Errorf("chunks[1].Title = %q, want %q", chunks[1].Title, "Decision Makers")
	}
	for i, c := range chunks {
		if c.ID != models.ChunkID(models.ModuleContacts, i) {
			t.Errorf("chunks[%d].ID = %q", i, c.ID)
		}
		if c.ModuleID != models.ModuleContacts {
			t.Errorf("chunks[%d].ModuleID = %q", i, c.ModuleID)
		}
		if strings.Contains(c.Content, "#") {
			t.Errorf("chunks[%d].Content contains heading marker: %q", i, c.Content)
		}
	}
}

func TestSplit_ContentAboveFloor(t *testing.T) {
	doc := "# A\nshort\n# B\n" + longText("outreach", 30) + "\n# C\n" + longText("email", 30) + "\n# D\ntail"

	chunks := Split(models.ModuleOutreach, "Email Outreach Campaign", doc)
	if len(chunks) == 0 {
		t.Fatal("Split() returned no chunks")
	}
	for _, c := range chunks {
		if len(c.Content) <= models.MinChunkLength {
			t.Errorf("chunk %s has %d chars, want > %d", c.ID, len(c.Content), models.MinChunkLength)
		}
	}
}

func TestSplit_ShortFragmentsMergeForward(t *testing.T) {
	doc := "# Intro\nshort intro\n## Details\n" + longText("proposal", 20)

	chunks := Split(models.ModuleProposals, "Sponsorship Packages & Proposals", doc)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if !strings.Contains(chunks[0].Content, "short intro") {
		t.Errorf("merged chunk lost the short fragment: %q", chunks[0].Content)
	}
	if chunks[0].Title != "Details" {
		t.Errorf("Title = %q, want Details", chunks[0].Title)
	}
}

func TestSplit_TailJoinsLastChunk(t *testing.T) {
	doc := longText("meeting", 20) + "\n# Wrap up\nSee you soon."

	chunks := Split(models.ModuleNegotiation, "Meeting & Negotiation", doc)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Content, "See you soon.") {
		t.Errorf("tail not appended: %q", chunks[0].Content)
	}
	if chunks[0].Title != "Meeting & Negotiation" {
		t.Errorf("Title = %q, want module title", chunks[0].Title)
	}
}

func TestSplit_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"no headings short", "Just a short note about closing.", 1},
		{"only headings", "# One\n## Two\n### Three", 1},
		{"empty", "", 0},
		{"whitespace", "  \n\t ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(models.ModulePartnerships, "Closing & Maintaining Partnerships", tt.content)
			if len(chunks) != tt.want {
				t.Fatalf("Split() returned %d chunks, want %d", len(chunks), tt.want)
			}
			if tt.want == 1 {
				c := chunks[0]
				if c.ID != "M7-0" || c.Title != "Closing & Maintaining Partnerships" {
					t.Errorf("fallback chunk = %+v", c)
				}
				if c.Content != strings.TrimSpace(tt.content) {
					t.Errorf("fallback Content = %q", c.Content)
				}
			}
		})
	}
}

func TestSplit_DeepHeadingsAreBody(t *testing.T) {
	doc := "#### Not a heading\n" + longText("tier", 30)

	chunks := Split(models.ModuleProposals, "Sponsorship Packages & Proposals", doc)
	if len(chunks) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Title != "Sponsorship Packages & Proposals" {
		t.Errorf("Title = %q, want module title", chunks[0].Title)
	}
	if !strings.Contains(chunks[0].Content, "#### Not a heading") {
		t.Errorf("level-4 heading should stay in content: %q", chunks[0].Content)
	}
}
