package interpret

import (
	"testing"

	"github.com/harper/tap-coach/internal/models"
)

func chunksFor(ids ...models.ModuleID) []models.Chunk {
	chunks := make([]models.Chunk, len(ids))
	for i, id := range ids {
		chunks[i] = models.Chunk{ID: models.ChunkID(id, i), ModuleID: id, Title: "t", Content: "c"}
	}
	return chunks
}

func moduleOf(r Result) string {
	if r.ModuleID == nil {
		return "<nil>"
	}
	return string(*r.ModuleID)
}

func TestInterpret_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		got := Interpret(raw, "pricing?", chunksFor(models.ModuleProposals))
		if got.Text != "" || got.ModuleID != nil {
			t.Errorf("Interpret(%q) = %+v, want empty text and nil module", raw, got)
		}
	}
}

func TestInterpret_StatedRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		want     string
	}{
		{
			name:     "valid id wins over evidence",
			raw:      "Try LinkedIn filters.\n\nRecommended module: M3",
			wantText: "Try LinkedIn filters.",
			want:     "M3",
		},
		{
			name:     "case insensitive prefix and trailing blank lines",
			raw:      "Open with your mission.\nrecommended MODULE:   M1  \n\n",
			wantText: "Open with your mission.",
			want:     "M1",
		},
		{
			name:     "only the recommendation line",
			raw:      "Recommended module: M7",
			wantText: "",
			want:     "M7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.raw, "", chunksFor(models.ModuleProposals, models.ModuleProposals))
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if moduleOf(got) != tt.want {
				t.Errorf("ModuleID = %s, want %s", moduleOf(got), tt.want)
			}
			if got.Tier != TierStated {
				t.Errorf("Tier = %s, want %s", got.Tier, TierStated)
			}
		})
	}
}

func TestInterpret_InvalidRecommendationFallsThrough(t *testing.T) {
	raw := "Great question! Bronze and gold tiers work well.\nRecommended module: M9"

	got := Interpret(raw, "", nil)
	if moduleOf(got) == "M9" {
		t.Fatal("invalid module id must not be returned")
	}
	if got.Text != raw {
		t.Errorf("Text = %q, want full reply", got.Text)
	}
	if got.ModuleID == nil || !got.ModuleID.IsValid() {
		t.Errorf("ModuleID = %s, want a valid module", moduleOf(got))
	}
}

func TestInterpret_NoneFallsThrough(t *testing.T) {
	got := Interpret("Happy to help.\nRecommended module: None", "", chunksFor(models.ModuleOutreach))
	if moduleOf(got) != "M4" || got.Tier != TierEvidence {
		t.Errorf("Interpret() = %s via %s, want M4 via evidence", moduleOf(got), got.Tier)
	}
}

func TestInterpret_Totality(t *testing.T) {
	replies := []string{
		"ok",
		"zzz qqq",
		"Recommended module:",
		"Recommended module: m3",
		"12345",
		"!!!",
	}
	for _, raw := range replies {
		got := Interpret(raw, "", nil)
		if got.ModuleID == nil || !got.ModuleID.IsValid() {
			t.Errorf("Interpret(%q) module = %s, want valid", raw, moduleOf(got))
		}
	}
}

func TestInferTier_EvidencePrecedence(t *testing.T) {
	// Wording points at proposals but retrieval found contacts
	content := "Pricing tiers, bronze, silver and gold packages."
	chunks := chunksFor(models.ModuleContacts, models.ModuleProposals, models.ModuleContacts)

	id, tier := InferTier(content, "how much does gold cost", chunks)
	if id != models.ModuleContacts || tier != TierEvidence {
		t.Errorf("InferTier() = %s via %s, want M3 via evidence", id, tier)
	}
}

func TestInferTier_EvidenceTieFirstSeen(t *testing.T) {
	chunks := chunksFor(models.ModuleNegotiation, models.ModuleTargets, models.ModuleTargets, models.ModuleNegotiation)
	if id := Infer("", "", chunks); id != models.ModuleNegotiation {
		t.Errorf("Infer() = %s, want M6", id)
	}
}

func TestInferTier_Chain(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		query    string
		want     models.ModuleID
		wantTier Tier
	}{
		{"intent foundation", "Let's get you ready.", "", models.ModuleFoundation, TierIntent},
		{"intent from query", "Sure.", "Who should I ask on LinkedIn?", models.ModuleContacts, TierIntent},
		{"intent order beats later modules", "Send a proposal after the meeting.", "", models.ModuleProposals, TierIntent},
		{"intent partnerships", "Onboard the team.", "", models.ModulePartnerships, TierIntent},
		{"keyword director", "Ask the director.", "", models.ModuleContacts, TierKeyword},
		{"keyword automation", "Automation helps.", "", models.ModuleOutreach, TierKeyword},
		{"keyword felt", "I felt that too.", "", models.ModuleNegotiation, TierKeyword},
		{"question write", "Please write it.", "", models.ModuleOutreach, TierQuestion},
		{"question much", "How much?", "", models.ModuleProposals, TierQuestion},
		{"question deal", "Big deal.", "", models.ModulePartnerships, TierQuestion},
		{"default", "Thanks!", "hello", models.DefaultModule, TierDefault},
		{"empty everything", "", "", models.DefaultModule, TierDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, tier := InferTier(tt.content, tt.query, nil)
			if id != tt.want || tier != tt.wantTier {
				t.Errorf("InferTier(%q, %q) = %s via %s, want %s via %s", tt.content, tt.query, id, tier, tt.want, tt.wantTier)
			}
		})
	}
}

func TestIntentPatterns_Order(t *testing.T) {
	if len(IntentPatterns) != len(models.Catalog) {
		t.Fatalf("IntentPatterns has %d entries, want %d", len(IntentPatterns), len(models.Catalog))
	}
	for i, p := range IntentPatterns {
		if p.Module != models.Catalog[i].ID {
			t.Errorf("IntentPatterns[%d] = %s, want %s", i, p.Module, models.Catalog[i].ID)
		}
	}
}

func TestKeywordModules_Valid(t *testing.T) {
	for word, id := range KeywordModules {
		if !id.IsValid() {
			t.Errorf("KeywordModules[%q] = %s is not a catalog module", word, id)
		}
	}
	if KeywordModules["pitch"] != models.ModuleNegotiation {
		t.Errorf("KeywordModules[pitch] = %s, want M6", KeywordModules["pitch"])
	}
}

func TestContactsScenario(t *testing.T) {
	chunks := chunksFor(models.ModuleContacts, models.ModuleContacts, models.ModuleOutreach)
	got := Interpret("Look for the sustainability lead and verify the address.", "How do I find a CSR manager's email?", chunks)
	if moduleOf(got) != "M3" {
		t.Errorf("ModuleID = %s, want M3", moduleOf(got))
	}
}
