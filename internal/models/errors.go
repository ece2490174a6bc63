package models

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Handlers map these to HTTP statuses in one place.
var (
	// --- Not found ---
	ErrCharacterNotFound = errors.New("character not found")
	ErrScenarioNotFound  = errors.New("scenario not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrImageNotFound     = errors.New("image not found")

	// --- Validation (client-caused) ---
	ErrNameRequired          = errors.New("character name is required")
	ErrScenarioTitleRequired = errors.New("scenario title is required")
	ErrInvalidSymptomType    = errors.New("invalid insanity symptom type")
	ErrUnrecognizedImport    = errors.New("text is not a recognized character export")
	ErrInvalidBackup         = errors.New("invalid backup document")

	// --- Image upload guards ---
	ErrImageQuotaExceeded = errors.New("character already has the maximum number of images")
	ErrImageTooLarge      = errors.New("image file exceeds the size limit")
	ErrInvalidImageType   = errors.New("only image files can be uploaded")
)

// ErrorResponse is the JSON error envelope returned by the HTTP boundary.
type ErrorResponse struct {
	Error string `json:"error"`
}
