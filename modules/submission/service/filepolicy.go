package service

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"rite-api/core/constants"
	"rite-api/core/errors"
	"rite-api/modules/submission/dto"
)

// allowedExtensions maps each permitted MIME type to the filename extensions
// that may declare it. Anything outside this table is rejected.
var allowedExtensions = map[string][]string{
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/gif":       {".gif"},
	"image/webp":      {".webp"},
	"video/mp4":       {".mp4"},
	"video/quicktime": {".mov", ".qt"},
	"video/x-msvideo": {".avi"},
	"application/pdf": {".pdf"},
}

// ValidateFile checks one declared file descriptor against the upload
// policy: allow-listed MIME type, size cap, and extension matching the
// declared type. Errors name the offending file.
func ValidateFile(f dto.FileDescriptorDTO) *errors.AppError {
	if f.Name == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "file name is required", nil)
	}
	if f.Size <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("file %q has no size", f.Name), nil)
	}
	if f.Size > constants.MaxPromoFileSize {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("file %q exceeds the %d MiB limit", f.Name, constants.MaxPromoFileSize>>20), nil)
	}

	exts, ok := allowedExtensions[f.MimeType]
	if !ok {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("file %q has unsupported type %q (allowed: %s)", f.Name, f.MimeType, allowedTypeList()), nil)
	}

	actual := strings.ToLower(filepath.Ext(f.Name))
	for _, e := range exts {
		if actual == e {
			return nil
		}
	}
	return errors.NewAppError(errors.ErrInvalidInput,
		fmt.Sprintf("file %q has extension %q but declares %q (expected one of %s)",
			f.Name, actual, f.MimeType, strings.Join(exts, ", ")), nil)
}

func allowedTypeList() string {
	types := make([]string, 0, len(allowedExtensions))
	for t := range allowedExtensions {
		types = append(types, t)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}
