// ABOUTME: Splits a module document into heading-addressed chunks
// ABOUTME: Short fragments merge forward; a module with no chunk gets one fallback chunk
package corpus

import (
	"regexp"
	"strings"

	"github.com/harper/tap-coach/internal/models"
)

// headingPattern matches "# Title", "## Title" and "### Title" lines
var headingPattern = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)

// Split turns one module document into chunks.
//
// Body text accumulates under the current heading and is emitted once its
// trimmed length exceeds models.MinChunkLength. A heading only changes the
// title used for later chunks; text still below the floor carries into the
// next section. A short tail is appended to the last emitted chunk. When the
// document yields no chunk at all but has content, the whole document becomes
// a single chunk titled with the module title.
func Split(moduleID models.ModuleID, moduleTitle, content string) []models.Chunk {
	var chunks []models.Chunk
	title := moduleTitle
	var acc strings.Builder

	emit := func() {
		body := strings.TrimSpace(acc.String())
		if len(body) <= models.MinChunkLength {
			return
		}
		chunks = append(chunks, models.Chunk{
			ID:       models.ChunkID(moduleID, len(chunks)),
			ModuleID: moduleID,
			Title:    title,
			Content:  body,
		})
		acc.Reset()
	}

	pos := 0
	for _, m := range headingPattern.FindAllStringSubmatchIndex(content, -1) {
		acc.WriteString(content[pos:m[0]])
		emit()
		if heading := strings.TrimSpace(content[m[4]:m[5]]); heading != "" {
			title = heading
		}
		pos = m[1]
	}
	acc.WriteString(content[pos:])
	emit()

	if tail := strings.TrimSpace(acc.String()); tail != "" && len(chunks) > 0 {
		last := &chunks[len(chunks)-1]
		last.Content += "\n\n" + tail
		acc.Reset()
	}

	if len(chunks) == 0 {
		if whole := strings.TrimSpace(content); whole != "" {
			chunks = append(chunks, models.Chunk{
				ID:       models.ChunkID(moduleID, 0),
				ModuleID: moduleID,
				Title:    moduleTitle,
				Content:  whole,
			})
		}
	}

	return chunks
}
