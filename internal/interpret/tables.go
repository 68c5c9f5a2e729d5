// ABOUTME: Ordered inference tables mapping reply and query wording to modules
// ABOUTME: Intent patterns, a keyword dictionary and coarse question-shape checks
package interpret

import (
	"regexp"
	"strings"

	"github.com/harper/tap-coach/internal/models"
)

// IntentPattern maps a regular expression over the lowercased reply and query
// to a module. Patterns are tried in slice order; the first match wins.
type IntentPattern struct {
	Module  models.ModuleID
	Pattern *regexp.Regexp
}

// IntentPatterns is checked in curriculum order
var IntentPatterns = []IntentPattern{
	{models.ModuleFoundation, regexp.MustCompile(`start|begin|new|ready|prepare|foundation|first|getting.*started|value.*prop|pitch|elevator|mission|differentiator|tap.*different|what.*is.*tap`)},
	{models.ModuleTargets, regexp.MustCompile(`research|identify|find.*compan|target|sponsor.*who|corporate|business|fortune.*500|patagonia|score|matrix|evaluate`)},
	{models.ModuleContacts, regexp.MustCompile(`contact|person|linkedin|find.*people|decision.*maker|csr|sustainability.*manager|hunter\.io|email.*find|who.*contact`)},
	{models.ModuleOutreach, regexp.MustCompile(`email|outreach|message|subject|template|campaign|follow.*up|sequence|lemlist|woodpecker|instantly|reply|response`)},
	{models.ModuleProposals, regexp.MustCompile(`proposal|package|pricing|roi|benefit|tier|offer|bronze|silver|gold|platinum|price|cost|sponsor.*level`)},
	{models.ModuleNegotiation, regexp.MustCompile(`meeting|negotiat|present|pitch|discuss|objection|budget.*concern|feel.*felt.*found|handle.*objection|presentation`)},
	{models.ModulePartnerships, regexp.MustCompile(`close|partnership|maintain|contract|relationship|seal.*deal|renewal|onboard|nurture|long.*term`)},
}

// KeywordModules maps a whole cleaned word to a module.
// "pitch" belongs to negotiation.
var KeywordModules = map[string]models.ModuleID{
	"start": models.ModuleFoundation, "begin": models.ModuleFoundation, "new": models.ModuleFoundation,
	"ready": models.ModuleFoundation, "foundation": models.ModuleFoundation, "value": models.ModuleFoundation,
	"proposition": models.ModuleFoundation, "elevator": models.ModuleFoundation, "different": models.ModuleFoundation,

	"research": models.ModuleTargets, "target": models.ModuleTargets, "sponsor": models.ModuleTargets,
	"company": models.ModuleTargets, "corporate": models.ModuleTargets, "identify": models.ModuleTargets,
	"evaluate": models.ModuleTargets, "score": models.ModuleTargets, "matrix": models.ModuleTargets,
	"patagonia": models.ModuleTargets,

	"contact": models.ModuleContacts, "linkedin": models.ModuleContacts, "person": models.ModuleContacts,
	"find": models.ModuleContacts, "csr": models.ModuleContacts, "sustainability": models.ModuleContacts,
	"manager": models.ModuleContacts, "director": models.ModuleContacts, "hunter": models.ModuleContacts,

	"email": models.ModuleOutreach, "outreach": models.ModuleOutreach, "template": models.ModuleOutreach,
	"subject": models.ModuleOutreach, "follow": models.ModuleOutreach, "sequence": models.ModuleOutreach,
	"reply": models.ModuleOutreach, "automation": models.ModuleOutreach, "campaign": models.ModuleOutreach,
	"lemlist": models.ModuleOutreach,

	"package": models.ModuleProposals, "proposal": models.ModuleProposals, "tier": models.ModuleProposals,
	"pricing": models.ModuleProposals, "roi": models.ModuleProposals, "bronze": models.ModuleProposals,
	"silver": models.ModuleProposals, "gold": models.ModuleProposals, "platinum": models.ModuleProposals,
	"price": models.ModuleProposals,

	"meeting": models.ModuleNegotiation, "negotiation": models.ModuleNegotiation, "objection": models.ModuleNegotiation,
	"budget": models.ModuleNegotiation, "presentation": models.ModuleNegotiation, "felt": models.ModuleNegotiation,
	"found": models.ModuleNegotiation, "handle": models.ModuleNegotiation, "respond": models.ModuleNegotiation,
	"pitch": models.ModuleNegotiation,

	"partnership": models.ModulePartnerships, "maintain": models.ModulePartnerships, "renewal": models.ModulePartnerships,
	"contract": models.ModulePartnerships, "relationship": models.ModulePartnerships, "close": models.ModulePartnerships,
	"seal": models.ModulePartnerships, "nurture": models.ModulePartnerships, "onboard": models.ModulePartnerships,
}

// QuestionShape matches when the text contains every All substring and, if
// Any is set, at least one Any substring
type QuestionShape struct {
	Module models.ModuleID
	All    []string
	Any    []string
}

// Matches reports whether text has this shape
func (q QuestionShape) Matches(text string) bool {
	for _, s := range q.All {
		if !strings.Contains(text, s) {
			return false
		}
	}
	if len(q.Any) == 0 {
		return true
	}
	for _, s := range q.Any {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// QuestionShapes is checked in order
var QuestionShapes = []QuestionShape{
	{Module: models.ModuleFoundation, All: []string{"how"}, Any: []string{"start", "begin"}},
	{Module: models.ModuleTargets, All: []string{"what", "company"}},
	{Module: models.ModuleContacts, Any: []string{"who", "contact"}},
	{Module: models.ModuleOutreach, Any: []string{"write", "send"}},
	{Module: models.ModuleProposals, Any: []string{"price", "cost", "much"}},
	{Module: models.ModuleNegotiation, Any: []string{"meeting", "they said", "objection"}},
	{Module: models.ModulePartnerships, Any: []string{"deal", "contract", "partnership"}},
}
