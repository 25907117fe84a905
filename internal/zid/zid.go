// Package zid validates and classifies Zettelkasten identifiers.
//
// Three id namespaces exist: "fl:<suffix>" for fleeting notes,
// "lit:<suffix>" for literature notes, and bare Luhmann-style ids
// (alternating digit/letter runs, starting with a digit) for zettels.
// Detection is a left-to-right prefix dispatch, never a lookup.
package zid

import "regexp"

// Kind classifies an id by its namespace.
type Kind string

const (
	KindFleeting   Kind = "fleeting"
	KindLiterature Kind = "literature"
	KindZettel     Kind = "zettel"
)

// Namespace prefixes.
const (
	FleetingPrefix   = "fl:"
	LiteraturePrefix = "lit:"
)

var (
	zettelRe     = regexp.MustCompile(`^[0-9][0-9a-z]*$`)
	fleetingRe   = regexp.MustCompile(`^fl:[a-zA-Z0-9_-]+$`)
	literatureRe = regexp.MustCompile(`^lit:[a-zA-Z0-9_-]+$`)
)

// IsValidZettelID reports whether id is a well-formed Luhmann id:
// starts with a digit and contains only digits and lowercase letters.
// Examples: "1", "1a", "1a1", "12b3".
func IsValidZettelID(id string) bool {
	return zettelRe.MatchString(id)
}

// IsValidFleetingID reports whether id is a well-formed fleeting note id.
func IsValidFleetingID(id string) bool {
	return fleetingRe.MatchString(id)
}

// IsValidLiteratureID reports whether id is a well-formed literature note id.
func IsValidLiteratureID(id string) bool {
	return literatureRe.MatchString(id)
}

// Detect returns the kind an id belongs to. Anything outside the fl: and
// lit: namespaces is treated as a zettel id.
func Detect(id string) Kind {
	if len(id) >= len(FleetingPrefix) && id[:len(FleetingPrefix)] == FleetingPrefix {
		return KindFleeting
	}
	if len(id) >= len(LiteraturePrefix) && id[:len(LiteraturePrefix)] == LiteraturePrefix {
		return KindLiterature
	}
	return KindZettel
}
