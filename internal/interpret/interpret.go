// ABOUTME: Splits an assistant reply into display text and a module recommendation
// ABOUTME: Falls back to a tiered inference chain when the reply names no valid module
package interpret

import (
	"regexp"
	"strings"

	"github.com/harper/tap-coach/internal/models"
	"github.com/harper/tap-coach/internal/prompt"
)

// Tier names the step of the inference chain that produced a module
type Tier string

const (
	TierStated   Tier = "stated"
	TierEvidence Tier = "evidence"
	TierIntent   Tier = "intent"
	TierKeyword  Tier = "keyword"
	TierQuestion Tier = "question"
	TierDefault  Tier = "default"
)

// Result is an interpreted reply. ModuleID is nil only for an empty reply.
type Result struct {
	Text     string
	ModuleID *models.ModuleID
	Tier     Tier
}

var nonWord = regexp.MustCompile(`\W`)

// Interpret parses raw. A last line of the form "Recommended module: Mx" with
// a valid id is stripped from the text and wins outright. Otherwise the whole
// trimmed reply is kept as text and the module comes from Infer.
func Interpret(raw, query string, chunks []models.Chunk) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{}
	}

	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if id, ok := statedModule(last); ok {
		text := strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n"))
		return Result{Text: text, ModuleID: models.ModulePtr(id), Tier: TierStated}
	}

	id, tier := InferTier(trimmed, query, chunks)
	return Result{Text: trimmed, ModuleID: models.ModulePtr(id), Tier: tier}
}

// statedModule extracts a valid module id from a recommendation line
func statedModule(line string) (models.ModuleID, bool) {
	prefix := prompt.RecommendationPrefix
	if len(line) < len(prefix) || !strings.EqualFold(line[:len(prefix)], prefix) {
		return "", false
	}
	id := models.ModuleID(strings.TrimSpace(line[len(prefix):]))
	return id, id.IsValid()
}

// Infer always returns a valid module
func Infer(content, query string, chunks []models.Chunk) models.ModuleID {
	id, _ := InferTier(content, query, chunks)
	return id
}

// InferTier runs the chain and reports which step decided:
// retrieval evidence, intent patterns, keyword lookup, question shape, default.
// Retrieved chunks always pre-empt the text-based steps.
func InferTier(content, query string, chunks []models.Chunk) (models.ModuleID, Tier) {
	if id, ok := mostFrequentModule(chunks); ok {
		return id, TierEvidence
	}

	combined := strings.ToLower(content) + " " + strings.ToLower(query)

	for _, p := range IntentPatterns {
		if p.Pattern.MatchString(combined) {
			return p.Module, TierIntent
		}
	}

	for _, word := range strings.Fields(combined) {
		if id, ok := KeywordModules[nonWord.ReplaceAllString(word, "")]; ok {
			return id, TierKeyword
		}
	}

	for _, shape := range QuestionShapes {
		if shape.Matches(combined) {
			return shape.Module, TierQuestion
		}
	}

	return models.DefaultModule, TierDefault
}

// mostFrequentModule tallies chunk modules; ties go to the first seen
func mostFrequentModule(chunks []models.Chunk) (models.ModuleID, bool) {
	counts := make(map[models.ModuleID]int)
	var order []models.ModuleID
	for _, c := range chunks {
		if !c.ModuleID.IsValid() {
			continue
		}
		if counts[c.ModuleID] == 0 {
			order = append(order, c.ModuleID)
		}
		counts[c.ModuleID]++
	}

	var best models.ModuleID
	for _, id := range order {
		if counts[id] > counts[best] {
			best = id
		}
	}
	return best, best != ""
}
