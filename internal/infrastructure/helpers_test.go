package infrastructure

import (
	"testing"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestGetExtensionFromMIME(t *testing.T) {
	cases := map[string]string{
		"image/jpeg": "jpg",
		"image/jpg":  "jpg",
		"image/png":  "png",
		"image/webp": "webp",
		"image/gif":  "gif",
	}
	for mime, want := range cases {
		got, err := GetExtensionFromMIME(mime)
		assert.NoError(t, err, mime)
		assert.Equal(t, want, got, mime)
	}

	_, err := GetExtensionFromMIME("image/svg+xml")
	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
}

func TestImagePath(t *testing.T) {
	assert.Equal(t, "/images/abc.png", ImagePath("abc.png"))
}
