// Package store implements the Rehydration Store: session-scoped
// persistence for RehydrationMaps behind one interface, with three
// backends (in-memory, Redis, Postgres), generalizing the teacher's own
// multi-backend split between internal/cache and internal/vector.
package store

import (
	"context"
	"errors"

	"github.com/redactlab/maskcore/internal/mask"
)

// ErrNotFound is returned by Get when no map is stored under a session
// id. It is a plain error value; the store does not wrap it in a
// sanitizer.Error of kind SessionNotFound.
var ErrNotFound = errors.New("store: session not found")

// Store persists RehydrationMaps under a caller-supplied session id.
// Put/Get/Delete must be atomic with respect to each other on a given
// key: a Get must never observe a partial write from a concurrent Put.
type Store interface {
	Put(ctx context.Context, sessionID string, m *mask.RehydrationMap) error
	Get(ctx context.Context, sessionID string) (*mask.RehydrationMap, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

// document is the wire shape a RehydrationMap is serialized to: it
// preserves insertion order (spec.md §6), which map[string]string
// cannot.
type document struct {
	Entries []entryDocument `json:"entries"`
}

type entryDocument struct {
	Placeholder  string `json:"placeholder"`
	OriginalText string `json:"original_text"`
	Label        string `json:"label"`
	Ordinal      int    `json:"ordinal"`
}

func toDocument(m *mask.RehydrationMap) document {
	doc := document{Entries: make([]entryDocument, 0, m.Len())}
	for _, e := range m.Entries() {
		doc.Entries = append(doc.Entries, entryDocument{
			Placeholder:  e.Placeholder,
			OriginalText: e.OriginalText,
			Label:        e.Label,
			Ordinal:      e.Ordinal,
		})
	}
	return doc
}

func fromDocument(doc document) *mask.RehydrationMap {
	m := mask.NewRehydrationMap()
	for _, e := range doc.Entries {
		m.Restore(mask.RehydrationEntry{
			Placeholder:  e.Placeholder,
			OriginalText: e.OriginalText,
			Label:        e.Label,
			Ordinal:      e.Ordinal,
		})
	}
	return m
}
