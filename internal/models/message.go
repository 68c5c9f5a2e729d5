// ABOUTME: Message is one turn of the coaching conversation
// ABOUTME: Role is a closed set of user and assistant
package models

import (
	"fmt"
	"time"
)

// Role tags who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single entry of the ordered chat log
type Message struct {
	ID                int64     `json:"id"`
	Role              Role      `json:"role"`
	Content           string    `json:"content"`
	RecommendedModule *ModuleID `json:"recommendedModule,omitempty"`
}

// NewMessageID returns a time-based id, strictly greater than last
func NewMessageID(last int64) int64 {
	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// Recommendation returns the recommended module or "" when absent
func (m Message) Recommendation() ModuleID {
	if m.RecommendedModule == nil {
		return ""
	}
	return *m.RecommendedModule
}

// Validate checks role and recommendation at the persistence boundary
func (m Message) Validate() error {
	if !m.Role.IsValid() {
		return fmt.Errorf("message %d has unknown role %q", m.ID, m.Role)
	}
	if m.RecommendedModule != nil {
		if m.Role != RoleAssistant {
			return fmt.Errorf("message %d: only assistant messages carry a recommendation", m.ID)
		}
		if !m.RecommendedModule.IsValid() {
			return fmt.Errorf("message %d recommends unknown module %q", m.ID, *m.RecommendedModule)
		}
	}
	return nil
}

// ModulePtr is a convenience for building optional recommendations
func ModulePtr(id ModuleID) *ModuleID {
	return &id
}
