package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/metrics"
	"investigator-server/internal/models"
)

// ImageUpload carries one multipart upload. Size is the declared length and
// is checked against the limit before the blob is stored.
type ImageUpload struct {
	OriginalName string
	MimeType     string
	Size         int64
	Contents     io.Reader
}

// ImageService manages portrait uploads for a character.
type ImageService interface {
	ListImages(ctx context.Context, characterID uuid.UUID) ([]models.CharacterImage, error)
	// Upload enforces the per-character quota, size limit and MIME guard,
	// stores the blob and then the metadata row. The blob is removed again
	// when the row insert fails.
	Upload(ctx context.Context, characterID uuid.UUID, upload ImageUpload) (*models.CharacterImage, error)
	Rename(ctx context.Context, characterID, imageID uuid.UUID, imageName *string) (*models.CharacterImage, error)
	// Delete removes the metadata row and best-effort deletes the blob; the
	// outcome reports whether the blob actually went away.
	Delete(ctx context.Context, characterID, imageID uuid.UUID) (models.ImageDeleteOutcome, error)
}

type imageService struct {
	db            interfaces.DBTX
	characterRepo interfaces.CharacterRepository
	imageRepo     interfaces.ImageRepository
	blobStore     interfaces.BlobStore
	logger        *zap.Logger
}

// NewImageService wires the image service.
func NewImageService(
	db interfaces.DBTX,
	characterRepo interfaces.CharacterRepository,
	imageRepo interfaces.ImageRepository,
	blobStore interfaces.BlobStore,
	logger *zap.Logger,
) ImageService {
	return &imageService{
		db:            db,
		characterRepo: characterRepo,
		imageRepo:     imageRepo,
		blobStore:     blobStore,
		logger:        logger.Named("ImageService"),
	}
}

func (s *imageService) ListImages(ctx context.Context, characterID uuid.UUID) ([]models.CharacterImage, error) {
	if _, err := s.characterRepo.GetByID(ctx, s.db, characterID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByCharacter(ctx, s.db, characterID)
}

func (s *imageService) Upload(ctx context.Context, characterID uuid.UUID, upload ImageUpload) (*models.CharacterImage, error) {
	if !strings.HasPrefix(upload.MimeType, "image/") {
		return nil, models.ErrInvalidImageType
	}
	if upload.Size > models.MaxImageSizeBytes {
		return nil, models.ErrImageTooLarge
	}

	if _, err := s.characterRepo.GetByID(ctx, s.db, characterID); err != nil {
		return nil, err
	}

	count, err := s.imageRepo.CountByCharacter(ctx, s.db, characterID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxImagesPerCharacter {
		return nil, models.ErrImageQuotaExceeded
	}

	ext := strings.ToLower(filepath.Ext(upload.OriginalName))
	key := fmt.Sprintf("characters/%s/%s%s", characterID, uuid.New(), ext)

	publicPath, err := s.blobStore.Save(ctx, key, upload.Contents)
	if err != nil {
		return nil, fmt.Errorf("failed to store image blob: %w", err)
	}

	image := &models.CharacterImage{
		CharacterID:  characterID,
		Filename:     key,
		OriginalName: upload.OriginalName,
		FilePath:     publicPath,
		FileSize:     upload.Size,
		MimeType:     upload.MimeType,
	}
	if err := s.imageRepo.Create(ctx, s.db, image); err != nil {
		if cleanupErr := s.blobStore.Delete(ctx, key); cleanupErr != nil {
			s.logger.Warn("Failed to clean up blob after row insert failure",
				zap.String("key", key), zap.Error(cleanupErr))
		}
		return nil, err
	}

	metrics.ImagesUploaded.Inc()
	s.logger.Info("Image uploaded",
		zap.String("character_id", characterID.String()),
		zap.String("image_id", image.ID.String()),
		zap.Int64("size", upload.Size))
	return image, nil
}

func (s *imageService) Rename(ctx context.Context, characterID, imageID uuid.UUID, imageName *string) (*models.CharacterImage, error) {
	image, err := s.getOwnedImage(ctx, characterID, imageID)
	if err != nil {
		return nil, err
	}

	if err := s.imageRepo.UpdateName(ctx, s.db, imageID, imageName); err != nil {
		return nil, err
	}
	image.ImageName = imageName
	return image, nil
}

func (s *imageService) Delete(ctx context.Context, characterID, imageID uuid.UUID) (models.ImageDeleteOutcome, error) {
	image, err := s.getOwnedImage(ctx, characterID, imageID)
	if err != nil {
		return "", err
	}

	if err := s.imageRepo.Delete(ctx, s.db, imageID); err != nil {
		return "", err
	}

	if err := s.blobStore.Delete(ctx, image.Filename); err != nil {
		metrics.OrphanedBlobs.Inc()
		s.logger.Warn("Failed to delete image blob, leaving orphan",
			zap.String("image_id", imageID.String()),
			zap.String("key", image.Filename),
			zap.Error(err))
		return models.BlobOrphaned, nil
	}
	return models.BlobDeleted, nil
}

// getOwnedImage loads the image and checks it belongs to the character; an
// image reached through the wrong character reads as absent.
func (s *imageService) getOwnedImage(ctx context.Context, characterID, imageID uuid.UUID) (*models.CharacterImage, error) {
	image, err := s.imageRepo.GetByID(ctx, s.db, imageID)
	if err != nil {
		return nil, err
	}
	if image.CharacterID != characterID {
		return nil, models.ErrImageNotFound
	}
	return image, nil
}
