package models

import (
	"time"

	"github.com/google/uuid"
)

// Image upload limits.
const (
	MaxImagesPerCharacter = 5
	MaxImageSizeBytes     = 5 * 1024 * 1024
)

// CharacterImage is one portrait asset. Filename is the generated blob key;
// OriginalName is what the user uploaded; ImageName is an optional display
// label the user can edit later.
type CharacterImage struct {
	ID           uuid.UUID `db:"id" json:"id"`
	CharacterID  uuid.UUID `db:"character_id" json:"characterId"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"originalName"`
	ImageName    *string   `db:"image_name" json:"imageName,omitempty"`
	FilePath     string    `db:"file_path" json:"filePath"`
	FileSize     int64     `db:"file_size" json:"fileSize"`
	MimeType     string    `db:"mime_type" json:"mimeType"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ImageDeleteOutcome reports what an image deletion actually achieved. Blob
// deletion is best-effort: a row delete still succeeds when the stored file
// cannot be removed, leaving an orphaned blob for later cleanup.
type ImageDeleteOutcome string

const (
	BlobDeleted  ImageDeleteOutcome = "blob_deleted"
	BlobOrphaned ImageDeleteOutcome = "blob_orphaned"
)
