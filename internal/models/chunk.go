// ABOUTME: Chunk is a retrievable fragment of a curriculum module document
// ABOUTME: Produced once per corpus load and immutable afterwards
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinChunkLength is the floor a chunk's trimmed content must exceed
const MinChunkLength = 100

// Chunk is a unit of retrievable module content
type Chunk struct {
	ID       string   `json:"id"`
	ModuleID ModuleID `json:"moduleId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
}

// ChunkID derives the id for the seq-th chunk of a module
func ChunkID(moduleID ModuleID, seq int) string {
	return string(moduleID) + "-" + strconv.Itoa(seq)
}

// Validate checks the chunk against the module catalog
func (c Chunk) Validate() error {
	if !c.ModuleID.IsValid() {
		return fmt.Errorf("chunk %q references unknown module %q", c.ID, c.ModuleID)
	}
	if strings.TrimSpace(c.Content) == "" {
		return errors.New("chunk content cannot be empty")
	}
	return nil
}
