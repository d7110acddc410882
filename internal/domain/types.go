package domain

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Defaults
// ============================================================================

const (
	DefaultIndex     = "capstone-yt-semantic-search"
	DefaultNamespace = "capstone-yt-semantic-search-ns"
)

// ============================================================================
// Result status
// ============================================================================

const (
	StatusCreated = "created" // namespace was created by this run
	StatusExists  = "exists"  // namespace already existed (if-not-exists)
	StatusDeleted = "deleted" // namespace was deleted by this run
	StatusFailed  = "failed"
)

// ============================================================================
// Event types
// ============================================================================

const (
	EventNamespaceCreated = "namespace.created"
	EventNamespaceDeleted = "namespace.deleted"
)

// NamespaceRequest identifies a namespace to operate on.
type NamespaceRequest struct {
	Index       string `json:"index"`
	Namespace   string `json:"namespace"`
	IfNotExists bool   `json:"if_not_exists,omitempty"`
}

// Namespace is a namespace as observed in the stats of its index.
type Namespace struct {
	Index       string `json:"index"`
	Name        string `json:"name"`
	VectorCount uint32 `json:"vector_count"`
}

// NamespaceResult reports the outcome of one request.
type NamespaceResult struct {
	Index     string `json:"index"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Changed reports whether the operation changed remote state.
func (r NamespaceResult) Changed() bool {
	return r.Status == StatusCreated || r.Status == StatusDeleted
}

// NamespaceEvent is published after a namespace is created or deleted.
type NamespaceEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Index      string    `json:"index"`
	Namespace  string    `json:"namespace"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewNamespaceEvent builds an event for the given result.
// Returns false if the result did not change remote state.
func NewNamespaceEvent(r NamespaceResult) (NamespaceEvent, bool) {
	var eventType string
	switch r.Status {
	case StatusCreated:
		eventType = EventNamespaceCreated
	case StatusDeleted:
		eventType = EventNamespaceDeleted
	default:
		return NamespaceEvent{}, false
	}

	return NamespaceEvent{
		ID:         "evt_" + uuid.New().String(),
		Type:       eventType,
		Index:      r.Index,
		Namespace:  r.Namespace,
		OccurredAt: time.Now().UTC(),
	}, true
}
