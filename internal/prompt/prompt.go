// ABOUTME: Builds the coaching assistant's system instruction
// ABOUTME: Embeds retrieved module chunks followed by fixed response rules
package prompt

import (
	"fmt"
	"strings"

	"github.com/harper/tap-coach/internal/models"
)

// RecommendationPrefix starts the mandatory last line of every reply
const RecommendationPrefix = "Recommended module:"

const preamble = `You are the TAP Coaching Assistant for The Total Altruism Project's sponsorship outreach program.

IMPORTANT: Keep responses CONCISE and CHAT-FRIENDLY (2-4 short paragraphs max).`

const guidelines = `RESPONSE GUIDELINES:
1. Answer using TAP context as PRIMARY source
2. Keep responses SHORT and SCANNABLE (2-4 paragraphs max)
3. Use bullet points or numbered lists when helpful
4. ALWAYS reference specific TAP methods/frameworks when relevant
5. CRITICAL: ALWAYS mention relevant modules using "**Module X: Title**" format to make them clickable
6. MANDATORY: Always end with "` + RecommendationPrefix + ` Mx" (or "` + RecommendationPrefix + ` None") on its own last line - NEVER skip this

MODULE REFERENCE RULES:
- If question relates to getting started/foundation → Always mention M1
- If about research/targeting → Always mention M2
- If about finding contacts → Always mention M3
- If about emails/outreach → Always mention M4
- If about packages/pricing → Always mention M5
- If about meetings/objections → Always mention M6
- If about closing/partnerships → Always mention M7
- When in doubt, default to the most relevant module based on content

TONE: Conversational, practical, encouraging. Think "quick expert advice" not "comprehensive guide."`

const closing = `Focus on ACTIONABLE next steps the user can take right now. NEVER respond without a module recommendation.`

// Compose returns the system prompt for the given retrieved chunks.
// With no chunks the context section is present but empty.
func Compose(chunks []models.Chunk) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\nCONTEXT FROM TAP MODULES:\n")
	for _, c := range chunks {
		fmt.Fprintf(&b, "\n**%s (%s)**\n%s\n---\n", c.Title, c.ModuleID, c.Content)
	}

	b.WriteString("\n")
	b.WriteString(guidelines)
	b.WriteString("\n\n")
	b.WriteString(moduleReference())
	b.WriteString("\n\n")
	b.WriteString(closing)
	return b.String()
}

// moduleReference lists every catalog module on one line
func moduleReference() string {
	refs := make([]string, len(models.Catalog))
	for i, m := range models.Catalog {
		refs[i] = fmt.Sprintf("%s: %s", m.ID, m.Title)
	}
	return "Module reference: " + strings.Join(refs, ", ")
}
