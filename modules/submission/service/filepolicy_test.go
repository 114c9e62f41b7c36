package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rite-api/core/constants"
	"rite-api/core/errors"
	"rite-api/modules/submission/dto"
)

func TestValidateFile_Accepted(t *testing.T) {
	cases := []dto.FileDescriptorDTO{
		{Name: "photo.png", MimeType: "image/png", Size: 1024},
		{Name: "press.JPG", MimeType: "image/jpeg", Size: 2 << 20},
		{Name: "set-teaser.mov", MimeType: "video/quicktime", Size: 30 << 20},
		{Name: "rider.pdf", MimeType: "application/pdf", Size: 500},
		{Name: "exactly-at-cap.mp4", MimeType: "video/mp4", Size: constants.MaxPromoFileSize},
	}
	for _, f := range cases {
		assert.Nil(t, ValidateFile(f), "file %q should pass", f.Name)
	}
}

func TestValidateFile_ExtensionMustMatchDeclaredType(t *testing.T) {
	appErr := ValidateFile(dto.FileDescriptorDTO{Name: "photo.png", MimeType: "image/jpeg", Size: 1024})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "photo.png")
	assert.Contains(t, appErr.Message, ".png")
	assert.Contains(t, appErr.Message, "image/jpeg")
}

func TestValidateFile_UnsupportedType(t *testing.T) {
	appErr := ValidateFile(dto.FileDescriptorDTO{Name: "mix.exe", MimeType: "application/x-msdownload", Size: 1024})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "application/x-msdownload")
}

func TestValidateFile_SizeCap(t *testing.T) {
	appErr := ValidateFile(dto.FileDescriptorDTO{Name: "long-set.mp4", MimeType: "video/mp4", Size: constants.MaxPromoFileSize + 1})
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "long-set.mp4")
	assert.Contains(t, appErr.Message, "50 MiB")
}

func TestValidateFile_EmptyAndZeroSize(t *testing.T) {
	require.NotNil(t, ValidateFile(dto.FileDescriptorDTO{MimeType: "image/png", Size: 10}))
	require.NotNil(t, ValidateFile(dto.FileDescriptorDTO{Name: "a.png", MimeType: "image/png", Size: 0}))
}
