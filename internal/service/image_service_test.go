package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"investigator-server/internal/interfaces/mocks"
	"investigator-server/internal/models"
	"investigator-server/internal/service"
)

func newImageServiceWithMocks() (service.ImageService, *mocks.MockCharacterRepository, *mocks.MockImageRepository, *mocks.MockBlobStore) {
	characterRepo := new(mocks.MockCharacterRepository)
	imageRepo := new(mocks.MockImageRepository)
	blobStore := new(mocks.MockBlobStore)
	svc := service.NewImageService(nil, characterRepo, imageRepo, blobStore, zap.NewNop())
	return svc, characterRepo, imageRepo, blobStore
}

func pngUpload(size int64) service.ImageUpload {
	return service.ImageUpload{
		OriginalName: "portrait.png",
		MimeType:     "image/png",
		Size:         size,
		Contents:     strings.NewReader("not actually a png"),
	}
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	characterID := uuid.New()

	t.Run("stores blob under the character prefix then the row", func(t *testing.T) {
		svc, characterRepo, imageRepo, blobStore := newImageServiceWithMocks()

		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(testCharacter(characterID), nil).Once()
		imageRepo.On("CountByCharacter", ctx, mock.Anything, characterID).Return(2, nil).Once()
		blobStore.On("Save", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "characters/"+characterID.String()+"/") &&
				strings.HasSuffix(key, ".png")
		}), mock.Anything).Return("/uploads/characters/x/a.png", nil).Once()
		imageRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(img *models.CharacterImage) bool {
			return img.CharacterID == characterID &&
				img.OriginalName == "portrait.png" &&
				img.MimeType == "image/png" &&
				img.FilePath == "/uploads/characters/x/a.png"
		})).Return(nil).Once()

		image, err := svc.Upload(ctx, characterID, pngUpload(1024))

		assert.NoError(t, err)
		assert.NotNil(t, image)
		blobStore.AssertExpectations(t)
		imageRepo.AssertExpectations(t)
	})

	t.Run("non-image MIME type rejected", func(t *testing.T) {
		svc, _, _, blobStore := newImageServiceWithMocks()

		upload := pngUpload(1024)
		upload.MimeType = "application/pdf"

		image, err := svc.Upload(ctx, characterID, upload)

		assert.Nil(t, image)
		assert.ErrorIs(t, err, models.ErrInvalidImageType)
		blobStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized file rejected", func(t *testing.T) {
		svc, _, _, _ := newImageServiceWithMocks()

		image, err := svc.Upload(ctx, characterID, pngUpload(models.MaxImageSizeBytes+1))

		assert.Nil(t, image)
		assert.ErrorIs(t, err, models.ErrImageTooLarge)
	})

	t.Run("quota of five enforced before storing", func(t *testing.T) {
		svc, characterRepo, imageRepo, blobStore := newImageServiceWithMocks()

		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(testCharacter(characterID), nil).Once()
		imageRepo.On("CountByCharacter", ctx, mock.Anything, characterID).Return(models.MaxImagesPerCharacter, nil).Once()

		image, err := svc.Upload(ctx, characterID, pngUpload(1024))

		assert.Nil(t, image)
		assert.ErrorIs(t, err, models.ErrImageQuotaExceeded)
		blobStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blob is cleaned up when the row insert fails", func(t *testing.T) {
		svc, characterRepo, imageRepo, blobStore := newImageServiceWithMocks()

		characterRepo.On("GetByID", ctx, mock.Anything, characterID).Return(testCharacter(characterID), nil).Once()
		imageRepo.On("CountByCharacter", ctx, mock.Anything, characterID).Return(0, nil).Once()
		blobStore.On("Save", ctx, mock.Anything, mock.Anything).Return("/uploads/x", nil).Once()
		imageRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()
		blobStore.On("Delete", ctx, mock.Anything).Return(nil).Once()

		image, err := svc.Upload(ctx, characterID, pngUpload(1024))

		assert.Nil(t, image)
		assert.Error(t, err)
		blobStore.AssertExpectations(t)
	})
}

func TestRenameImage(t *testing.T) {
	ctx := context.Background()
	characterID := uuid.New()
	imageID := uuid.New()

	t.Run("rename updates only the display label", func(t *testing.T) {
		svc, _, imageRepo, _ := newImageServiceWithMocks()

		label := "立ち絵"
		imageRepo.On("GetByID", ctx, mock.Anything, imageID).Return(&models.CharacterImage{
			ID: imageID, CharacterID: characterID,
		}, nil).Once()
		imageRepo.On("UpdateName", ctx, mock.Anything, imageID, &label).Return(nil).Once()

		image, err := svc.Rename(ctx, characterID, imageID, &label)

		assert.NoError(t, err)
		assert.Equal(t, &label, image.ImageName)
	})

	t.Run("image owned by another character reads as absent", func(t *testing.T) {
		svc, _, imageRepo, _ := newImageServiceWithMocks()

		imageRepo.On("GetByID", ctx, mock.Anything, imageID).Return(&models.CharacterImage{
			ID: imageID, CharacterID: uuid.New(),
		}, nil).Once()

		image, err := svc.Rename(ctx, characterID, imageID, nil)

		assert.Nil(t, image)
		assert.ErrorIs(t, err, models.ErrImageNotFound)
		imageRepo.AssertNotCalled(t, "UpdateName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteImage(t *testing.T) {
	ctx := context.Background()
	characterID := uuid.New()
	imageID := uuid.New()

	ownedImage := &models.CharacterImage{
		ID:          imageID,
		CharacterID: characterID,
		Filename:    "characters/x/a.png",
	}

	t.Run("row and blob both removed", func(t *testing.T) {
		svc, _, imageRepo, blobStore := newImageServiceWithMocks()

		imageRepo.On("GetByID", ctx, mock.Anything, imageID).Return(ownedImage, nil).Once()
		imageRepo.On("Delete", ctx, mock.Anything, imageID).Return(nil).Once()
		blobStore.On("Delete", ctx, "characters/x/a.png").Return(nil).Once()

		outcome, err := svc.Delete(ctx, characterID, imageID)

		assert.NoError(t, err)
		assert.Equal(t, models.BlobDeleted, outcome)
	})

	t.Run("blob failure is a soft fail", func(t *testing.T) {
		svc, _, imageRepo, blobStore := newImageServiceWithMocks()

		imageRepo.On("GetByID", ctx, mock.Anything, imageID).Return(ownedImage, nil).Once()
		imageRepo.On("Delete", ctx, mock.Anything, imageID).Return(nil).Once()
		blobStore.On("Delete", ctx, "characters/x/a.png").Return(assert.AnError).Once()

		outcome, err := svc.Delete(ctx, characterID, imageID)

		assert.NoError(t, err)
		assert.Equal(t, models.BlobOrphaned, outcome)
	})

	t.Run("row delete failure keeps the blob", func(t *testing.T) {
		svc, _, imageRepo, blobStore := newImageServiceWithMocks()

		imageRepo.On("GetByID", ctx, mock.Anything, imageID).Return(ownedImage, nil).Once()
		imageRepo.On("Delete", ctx, mock.Anything, imageID).Return(assert.AnError).Once()

		outcome, err := svc.Delete(ctx, characterID, imageID)

		assert.Error(t, err)
		assert.Empty(t, outcome)
		blobStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
