package handlers

import (
	"catalog-backend/services"
	"catalog-backend/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFileNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

func isValidImageExtension(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png", ".webp"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

func sanitizeFileName(name string) string {
	return unsafeFileNameChars.ReplaceAllString(filepath.Base(name), "")
}

// makeObjectKey builds the storage key for an uploaded image. Two uploads in
// the same millisecond with the same name collide; accepted, not deduplicated.
func makeObjectKey(fileName string) string {
	return fmt.Sprintf("products/%d_%s", time.Now().UnixMilli(), sanitizeFileName(fileName))
}

// uploadFormFiles uploads every file part and records its URL and key. If
// any upload fails, the objects stored so far in this request are deleted
// before the error is returned.
func uploadFormFiles(ctx context.Context, store storage.Storage, files []*multipart.FileHeader) ([]services.NewProductImage, error) {
	var uploaded []services.NewProductImage
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, errors.Join(err, cleanupObjects(ctx, store, uploaded))
		}

		key := makeObjectKey(file.Filename)
		err = store.Upload(ctx, key, src, file.Size, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return nil, errors.Join(err, cleanupObjects(ctx, store, uploaded))
		}

		uploaded = append(uploaded, services.NewProductImage{
			URL: store.PublicURL(key),
			Key: key,
		})
	}
	return uploaded, nil
}

// cleanupObjects is the compensating action after a failed create/update:
// deletes in reverse upload order and returns the combined failures, if any.
func cleanupObjects(ctx context.Context, store storage.Storage, images []services.NewProductImage) error {
	var errs []error
	for i := len(images) - 1; i >= 0; i-- {
		if err := store.Delete(ctx, images[i].Key); err != nil {
			errs = append(errs, fmt.Errorf("clean up uploaded object %s: %w", images[i].Key, err))
		}
	}
	return errors.Join(errs...)
}

// parseRemovedKeys decodes the removedS3Keys form field, a JSON array of
// storage keys.
func parseRemovedKeys(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
