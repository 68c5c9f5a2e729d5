// ABOUTME: Keyword-frequency retrieval over the module chunk set
// ABOUTME: Title hits weigh 4, content hits 2, plus a per-module query boost
package retrieval

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/harper/tap-coach/internal/models"
)

const (
	// DefaultTopK is the number of chunks handed to the prompt
	DefaultTopK = 3

	TitleWeight   = 4
	ContentWeight = 2
)

// StopWords never become query keywords
var StopWords = map[string]bool{
	"how": true, "what": true, "when": true, "where": true, "why": true,
	"the": true, "and": true, "for": true, "with": true,
}

// ModuleBoostKeywords adds one point to a module's chunks for every entry
// contained in the lowercased query
var ModuleBoostKeywords = map[models.ModuleID][]string{
	models.ModuleFoundation:   {"foundation", "preparation", "ready", "start", "begin", "value", "proposition", "mission"},
	models.ModuleTargets:      {"identify", "target", "sponsor", "company", "research", "find", "corporate", "business"},
	models.ModuleContacts:     {"contact", "find", "people", "linkedin", "decision", "maker", "email", "address", "person"},
	models.ModuleOutreach:     {"email", "outreach", "campaign", "subject", "line", "follow", "template", "message"},
	models.ModuleProposals:    {"proposal", "package", "pricing", "roi", "return", "investment", "benefits", "tier"},
	models.ModuleNegotiation:  {"meeting", "negotiation", "presentation", "pitch", "objection", "discuss", "present"},
	models.ModulePartnerships: {"close", "closing", "partnership", "maintain", "relationship", "contract", "agreement"},
}

// Result is a chunk with its relevance score
type Result struct {
	Chunk models.Chunk `json:"chunk"`
	Score int          `json:"score"`
}

// Keywords lowercases the query, splits on whitespace, trims punctuation
// from token edges and drops stop words and tokens of two characters or fewer
func Keywords(query string) []string {
	var keywords []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(tok) <= 2 || StopWords[tok] {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

// ModuleBoost counts the module's boost keywords contained in queryLower
func ModuleBoost(queryLower string, moduleID models.ModuleID) int {
	boost := 0
	for _, kw := range ModuleBoostKeywords[moduleID] {
		if strings.Contains(queryLower, kw) {
			boost++
		}
	}
	return boost
}

// matcher counts words starting with a keyword
type matcher struct {
	re *regexp.Regexp
}

func newMatcher(keyword string) matcher {
	return matcher{re: regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\w*\b`)}
}

func (m matcher) count(text string) int {
	return len(m.re.FindAllStringIndex(text, -1))
}

func compile(keywords []string) []matcher {
	matchers := make([]matcher, len(keywords))
	for i, kw := range keywords {
		matchers[i] = newMatcher(kw)
	}
	return matchers
}

func score(c models.Chunk, matchers []matcher, queryLower string) int {
	title := strings.ToLower(c.Title)
	content := strings.ToLower(c.Content)

	total := 0
	for _, m := range matchers {
		total += TitleWeight*m.count(title) + ContentWeight*m.count(content)
	}
	return total + ModuleBoost(queryLower, c.ModuleID)
}

// Score computes the relevance of one chunk to the query
func Score(c models.Chunk, query string) int {
	return score(c, compile(Keywords(query)), strings.ToLower(query))
}

// Rank scores every chunk and returns those with a positive score, best
// first. Equal scores keep the chunk set's original order.
func Rank(chunks []models.Chunk, query string) []Result {
	if len(chunks) == 0 {
		return nil
	}

	matchers := compile(Keywords(query))
	queryLower := strings.ToLower(query)

	results := make([]Result, 0, len(chunks))
	for _, c := range chunks {
		if s := score(c, matchers, queryLower); s > 0 {
			results = append(results, Result{Chunk: c, Score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Search returns the top k chunks for the query
func Search(chunks []models.Chunk, query string, k int) []models.Chunk {
	if k <= 0 {
		return nil
	}
	ranked := Rank(chunks, query)
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := make([]models.Chunk, len(ranked))
	for i, r := range ranked {
		out[i] = r.Chunk
	}
	return out
}
