package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stayhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.PropertyImage, error)
	listByPropertyFn func(context.Context, uint) ([]models.PropertyImage, error)
	createFn         func(context.Context, *models.PropertyImage) error
	deleteFn         func(context.Context, uint) error
}

func (s *imageRepoStub) GetByID(ctx context.Context, id uint) (*models.PropertyImage, error) {
	return s.getByIDFn(ctx, id)
}
func (s *imageRepoStub) ListByProperty(ctx context.Context, propertyID uint) ([]models.PropertyImage, error) {
	return s.listByPropertyFn(ctx, propertyID)
}
func (s *imageRepoStub) Create(ctx context.Context, image *models.PropertyImage) error {
	return s.createFn(ctx, image)
}
func (s *imageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopImageRepo() *imageRepoStub {
	return &imageRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.PropertyImage, error) {
			return &models.PropertyImage{ID: id, PropertyID: 1, Image: "1_abc.webp"}, nil
		},
		listByPropertyFn: func(context.Context, uint) ([]models.PropertyImage, error) { return nil, nil },
		createFn: func(_ context.Context, img *models.PropertyImage) error {
			img.ID = 1
			return nil
		},
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_UploadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Writes WebP", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewImageService(noopImageRepo(), noopPropertyRepo(), dir, 5)

		img, err := svc.UploadImage(ctx, UploadImageInput{
			OwnerID:    1,
			PropertyID: 1,
			Content:    tinyPNG(t, 600, 400),
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(img.Image, "1_"))
		assert.True(t, strings.HasSuffix(img.Image, ".webp"))

		_, statErr := os.Stat(filepath.Join(dir, img.Image))
		assert.NoError(t, statErr)
	})

	t.Run("Empty File", func(t *testing.T) {
		svc := NewImageService(noopImageRepo(), noopPropertyRepo(), t.TempDir(), 5)
		_, err := svc.UploadImage(ctx, UploadImageInput{OwnerID: 1, PropertyID: 1})
		assertValidationError(t, err)
	})

	t.Run("Oversize File", func(t *testing.T) {
		svc := NewImageService(noopImageRepo(), noopPropertyRepo(), t.TempDir(), 1)
		_, err := svc.UploadImage(ctx, UploadImageInput{
			OwnerID:    1,
			PropertyID: 1,
			Content:    make([]byte, 1024*1024+1),
		})
		assertValidationError(t, err)
	})

	t.Run("Corrupt File", func(t *testing.T) {
		svc := NewImageService(noopImageRepo(), noopPropertyRepo(), t.TempDir(), 5)
		_, err := svc.UploadImage(ctx, UploadImageInput{
			OwnerID:    1,
			PropertyID: 1,
			Content:    []byte("definitely not an image"),
		})
		assertValidationError(t, err)
	})

	t.Run("Not The Owner", func(t *testing.T) {
		svc := NewImageService(noopImageRepo(), noopPropertyRepo(), t.TempDir(), 5)
		_, err := svc.UploadImage(ctx, UploadImageInput{
			OwnerID:    2,
			PropertyID: 1,
			Content:    tinyPNG(t, 10, 10),
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})
}

func TestImageService_DeleteImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Record And File", func(t *testing.T) {
		dir := t.TempDir()
		filename := "1_abc.webp"
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("x"), 0o644))

		deleted := false
		imageRepo := noopImageRepo()
		imageRepo.deleteFn = func(context.Context, uint) error {
			deleted = true
			return nil
		}
		svc := NewImageService(imageRepo, noopPropertyRepo(), dir, 5)

		require.NoError(t, svc.DeleteImage(ctx, 1, 7))
		assert.True(t, deleted)
		_, statErr := os.Stat(filepath.Join(dir, filename))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Not The Owner", func(t *testing.T) {
		propertyRepo := noopPropertyRepo()
		propertyRepo.getByIDFn = func(context.Context, uint) (*models.Property, error) {
			return &models.Property{ID: 1, OwnerID: 2}, nil
		}
		svc := NewImageService(noopImageRepo(), propertyRepo, t.TempDir(), 5)

		err := svc.DeleteImage(ctx, 1, 7)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})
}

func TestImageService_ListImages_UnknownProperty(t *testing.T) {
	propertyRepo := noopPropertyRepo()
	propertyRepo.getByIDFn = func(_ context.Context, id uint) (*models.Property, error) {
		return nil, models.NewNotFoundError("Property", id)
	}
	svc := NewImageService(noopImageRepo(), propertyRepo, t.TempDir(), 5)

	_, err := svc.ListImages(context.Background(), 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
