package api

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Luhmann id format: a digit first, then digits and lowercase letters.
var zettelIDRe = regexp.MustCompile(`^[0-9][0-9a-z]*$`)

// CreateZettelRequest is the request body for creating a zettel.
type CreateZettelRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate validates the request.
func (r CreateZettelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Match(zettelIDRe)),
		validation.Field(&r.Title, validation.Required),
	)
}

// CreateFleetingRequest is the request body for capturing a fleeting note.
// An empty id lets the store assign the next one in the fl: sequence.
type CreateFleetingRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate validates the request.
func (r CreateFleetingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
	)
}

// CreateLiteratureRequest is the request body for creating a literature note.
type CreateLiteratureRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Validate validates the request.
func (r CreateLiteratureRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

// UpdateNoteRequest carries a partial update for any note kind. Nil fields
// are left untouched; a non-nil ID renames the record.
type UpdateNoteRequest struct {
	ID      *string `json:"id"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Source  *string `json:"source"`
}

// CreateLinkRequest is the request body for linking two zettels.
type CreateLinkRequest struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Reason   string `json:"reason"`
}

// Validate validates the request.
func (r CreateLinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SourceID, validation.Required),
		validation.Field(&r.TargetID, validation.Required),
		validation.Field(&r.Reason, validation.Required),
	)
}

// CreateReferenceRequest is the request body for referencing a literature
// note from a zettel.
type CreateReferenceRequest struct {
	ZettelID     string `json:"zettelId"`
	LiteratureID string `json:"literatureId"`
}

// Validate validates the request.
func (r CreateReferenceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ZettelID, validation.Required),
		validation.Field(&r.LiteratureID, validation.Required),
	)
}

// CreateIndexRequest is the request body for creating an index card.
type CreateIndexRequest struct {
	Name string `json:"name"`
}

// Validate validates the request.
func (r CreateIndexRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// AddIndexEntryRequest is the request body for putting a zettel on a card.
type AddIndexEntryRequest struct {
	ZettelID string `json:"zettelId"`
	Label    string `json:"label"`
}

// Validate validates the request.
func (r AddIndexEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ZettelID, validation.Required),
	)
}

// PromoteRequest is the request body for promoting a fleeting note.
// An empty zettelId accepts the suggested next root id.
type PromoteRequest struct {
	ZettelID string `json:"zettelId"`
}

// UpdateSettingsRequest is the request body for writing settings.
type UpdateSettingsRequest struct {
	Language *string `json:"language"`
	Path     *string `json:"path"`
}

// pagination is the envelope metadata on list responses.
type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type pagedResponse struct {
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

func pagedBody(data any, total, page, limit int) pagedResponse {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return pagedResponse{
		Data: data,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
