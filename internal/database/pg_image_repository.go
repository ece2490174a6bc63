package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces"
	"investigator-server/internal/models"
)

// Compile-time check
var _ interfaces.ImageRepository = (*pgImageRepository)(nil)

type pgImageRepository struct {
	logger *zap.Logger
}

// NewPgImageRepository creates the postgres-backed portrait metadata repository.
func NewPgImageRepository(logger *zap.Logger) interfaces.ImageRepository {
	return &pgImageRepository{
		logger: logger.Named("PgImageRepo"),
	}
}

const createImageQuery = `
	INSERT INTO character_images (character_id, filename, original_name, image_name, file_path, file_size, mime_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at`

const getImageByIDQuery = `
	SELECT id, character_id, filename, original_name, image_name, file_path, file_size, mime_type, created_at
	FROM character_images
	WHERE id = $1`

const listImagesByCharacterQuery = `
	SELECT id, character_id, filename, original_name, image_name, file_path, file_size, mime_type, created_at
	FROM character_images
	WHERE character_id = $1
	ORDER BY created_at ASC`

const countImagesByCharacterQuery = `
	SELECT COUNT(*) FROM character_images WHERE character_id = $1`

const updateImageNameQuery = `
	UPDATE character_images SET image_name = $2 WHERE id = $1`

const deleteImageQuery = `DELETE FROM character_images WHERE id = $1`

func (r *pgImageRepository) Create(ctx context.Context, q interfaces.DBTX, img *models.CharacterImage) error {
	err := q.QueryRow(ctx, createImageQuery,
		img.CharacterID, img.Filename, img.OriginalName, img.ImageName,
		img.FilePath, img.FileSize, img.MimeType,
	).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create image record",
			zap.String("character_id", img.CharacterID.String()), zap.Error(err))
		return fmt.Errorf("failed to create image record: %w", err)
	}
	r.logger.Debug("Image record created", zap.String("image_id", img.ID.String()))
	return nil
}

func (r *pgImageRepository) GetByID(ctx context.Context, q interfaces.DBTX, id uuid.UUID) (*models.CharacterImage, error) {
	var img models.CharacterImage
	err := q.QueryRow(ctx, getImageByIDQuery, id).Scan(
		&img.ID, &img.CharacterID, &img.Filename, &img.OriginalName, &img.ImageName,
		&img.FilePath, &img.FileSize, &img.MimeType, &img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrImageNotFound
		}
		r.logger.Error("Failed to get image", zap.String("image_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &img, nil
}

func (r *pgImageRepository) ListByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) ([]models.CharacterImage, error) {
	var images []models.CharacterImage
	if err := pgxscan.Select(ctx, q, &images, listImagesByCharacterQuery, characterID); err != nil {
		r.logger.Error("Failed to list images",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

func (r *pgImageRepository) CountByCharacter(ctx context.Context, q interfaces.DBTX, characterID uuid.UUID) (int, error) {
	var count int
	if err := q.QueryRow(ctx, countImagesByCharacterQuery, characterID).Scan(&count); err != nil {
		r.logger.Error("Failed to count images",
			zap.String("character_id", characterID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

func (r *pgImageRepository) UpdateName(ctx context.Context, q interfaces.DBTX, id uuid.UUID, imageName *string) error {
	tag, err := q.Exec(ctx, updateImageNameQuery, id, imageName)
	if err != nil {
		r.logger.Error("Failed to update image name", zap.String("image_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to update image name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrImageNotFound
	}
	return nil
}

func (r *pgImageRepository) Delete(ctx context.Context, q interfaces.DBTX, id uuid.UUID) error {
	tag, err := q.Exec(ctx, deleteImageQuery, id)
	if err != nil {
		r.logger.Error("Failed to delete image", zap.String("image_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrImageNotFound
	}
	return nil
}
