// Package models defines the domain types for the Zettelkasten store.
package models

import "time"

// FleetingNote is a quickly captured idea, expected to be promoted into a
// Zettel or discarded. IDs live in the "fl:" namespace.
type FleetingNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LiteratureNote captures content from an external source. IDs live in the
// "lit:" namespace.
type LiteratureNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Zettel is a permanent note identified by a Luhmann-style hierarchical id
// (alternating digit and letter runs, starting with a digit).
type Zettel struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Link is a typed, directed connection between two zettels. TargetID is nil
// when the target zettel has been deleted (a dangling edge).
type Link struct {
	SourceID string  `json:"sourceId"`
	TargetID *string `json:"targetId"`
	Reason   string  `json:"reason"`
}

// Reference is a directed connection from a zettel to a literature note.
// LiteratureID is nil when the literature note has been deleted.
type Reference struct {
	ZettelID     string  `json:"zettelId"`
	LiteratureID *string `json:"literatureId"`
}

// IndexEntry is one zettel slot on an index card.
type IndexEntry struct {
	ZettelID string `json:"zettelId"`
	Label    string `json:"label,omitempty"`
}

// IndexCard is a named, user-curated collection of zettel references.
type IndexCard struct {
	Name    string       `json:"name"`
	Entries []IndexEntry `json:"entries"`
}

// History actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLink   = "LINK"
	ActionUnlink = "UNLINK"
)

// History target types.
const (
	TargetFleeting   = "fleeting"
	TargetLiterature = "literature"
	TargetZettel     = "zettel"
	TargetLink       = "link"
	TargetReference  = "reference"
	TargetIndex      = "index"
)

// HistoryEntry is one row of the append-only change ledger. OldValue and
// NewValue hold JSON snapshots of the affected record, or nil when the side
// does not apply (no old value on CREATE, no new value on DELETE).
type HistoryEntry struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	OldValue   *string   `json:"oldValue"`
	NewValue   *string   `json:"newValue"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NoteSnapshot is the serialized shape history stores for note mutations.
// Source is only set for literature notes.
type NoteSnapshot struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// LinkSnapshot is the serialized shape history stores for link mutations.
type LinkSnapshot struct {
	SourceID string  `json:"sourceId"`
	TargetID *string `json:"targetId"`
	Reason   string  `json:"reason"`
}

// ReferenceSnapshot is the serialized shape history stores for reference
// mutations.
type ReferenceSnapshot struct {
	ZettelID     string  `json:"zettelId"`
	LiteratureID *string `json:"literatureId"`
}

// IndexSnapshot is the serialized shape history stores for index card
// mutations.
type IndexSnapshot struct {
	Name    string       `json:"name"`
	Entries []IndexEntry `json:"entries,omitempty"`
}
