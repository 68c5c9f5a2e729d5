package interpret

import (
	"reflect"
	"testing"

	"github.com/harper/tap-coach/internal/models"
)

func TestModuleLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Link
	}{
		{
			name: "bold module reference",
			text: "Start with **Module 3: Finding the Right Contacts** today.",
			want: []Link{{ModuleID: models.ModuleContacts, Text: "Module 3: Finding the Right Contacts"}},
		},
		{
			name: "plain reference stops at punctuation",
			text: "See Module 5: Sponsorship Packages, then rest.",
			want: []Link{{ModuleID: models.ModuleProposals, Text: "Module 5: Sponsorship Packages"}},
		},
		{
			name: "short form",
			text: "Review **M6: Negotiation** and M7: Partnerships.",
			want: []Link{
				{ModuleID: models.ModuleNegotiation, Text: "M6: Negotiation"},
				{ModuleID: models.ModulePartnerships, Text: "M7: Partnerships"},
			},
		},
		{
			name: "unknown module ignored",
			text: "Module 9: Secret stuff",
			want: nil,
		},
		{
			name: "recommendation line is not a link",
			text: "Recommended module: M2",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModuleLinks(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ModuleLinks() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderLinks(t *testing.T) {
	got := RenderLinks("Go to **Module 1: Foundation & Preparation** or Module 8: Nope", func(l Link) string {
		return "[" + string(l.ModuleID) + "]"
	})
	want := "Go to [M1] or Module 8: Nope"
	if got != want {
		t.Errorf("RenderLinks() = %q, want %q", got, want)
	}
}
