package handlers

import (
	"catalog-backend/services"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":           "photo.jpg",
		"my photo (1).jpg":    "myphoto1.jpg",
		"../../etc/passwd":    "passwd",
		"تصویر-محصول.png":     "-.png",
		"weird$chars%here.png": "weirdcharshere.png",
	}
	for input, want := range cases {
		assert.Equal(t, want, sanitizeFileName(input), input)
	}
}

func TestMakeObjectKey(t *testing.T) {
	key := makeObjectKey("front image.jpg")
	assert.True(t, strings.HasPrefix(key, "products/"), key)
	assert.True(t, strings.HasSuffix(key, "_frontimage.jpg"), key)
}

func TestParseRemovedKeys(t *testing.T) {
	keys, err := parseRemovedKeys("")
	require.NoError(t, err)
	assert.Nil(t, keys)

	keys, err = parseRemovedKeys(`["products/1_a.jpg","products/2_b.jpg"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"products/1_a.jpg", "products/2_b.jpg"}, keys)

	_, err = parseRemovedKeys("not-json")
	assert.Error(t, err)
}

func TestCleanupObjectsRemovesUploadedKeys(t *testing.T) {
	store := newMemStorage()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "products/1_a.jpg", strings.NewReader("a"), 1, "image/jpeg"))
	require.NoError(t, store.Upload(ctx, "products/2_b.jpg", strings.NewReader("b"), 1, "image/jpeg"))

	err := cleanupObjects(ctx, store, []services.NewProductImage{
		{URL: store.PublicURL("products/1_a.jpg"), Key: "products/1_a.jpg"},
		{URL: store.PublicURL("products/2_b.jpg"), Key: "products/2_b.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, store.count())
}
