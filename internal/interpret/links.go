// ABOUTME: Finds module references such as "**Module 3: Title**" in reply text
// ABOUTME: Used by the chat views to highlight and link suggested modules
package interpret

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/harper/tap-coach/internal/models"
)

var (
	linkPattern   = regexp.MustCompile(`\*\*Module \d+:[^*]+\*\*|Module \d+:[^.!\n,]+|\*\*M\d+:[^*]+\*\*|M\d+:[^.!\n,]+`)
	linkNumberRef = regexp.MustCompile(`(?i)(Module |M)(\d+):`)
)

// Link is one module reference found in text
type Link struct {
	ModuleID models.ModuleID `json:"moduleId"`
	Text     string          `json:"text"`
}

// ModuleLinks returns the references to catalog modules in order of appearance
func ModuleLinks(text string) []Link {
	var links []Link
	for _, match := range linkPattern.FindAllString(text, -1) {
		if link, ok := parseLink(match); ok {
			links = append(links, link)
		}
	}
	return links
}

// RenderLinks rewrites every valid module reference with render
func RenderLinks(text string, render func(Link) string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(match string) string {
		link, ok := parseLink(match)
		if !ok {
			return match
		}
		return render(link)
	})
}

func parseLink(match string) (Link, bool) {
	m := linkNumberRef.FindStringSubmatch(match)
	if m == nil {
		return Link{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Link{}, false
	}
	id := models.ModuleFromNumber(n)
	if !id.IsValid() {
		return Link{}, false
	}
	return Link{
		ModuleID: id,
		Text:     strings.TrimSpace(strings.ReplaceAll(match, "**", "")),
	}, true
}
