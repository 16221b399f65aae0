// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package validation

// MaxLogoSize is the upload cap for configurator logos (5 MB).
const MaxLogoSize = 5 << 20

// allowedLogoTypes are the accepted logo upload content types. Only the
// declared type and size are checked; uploads are never content-scanned.
var allowedLogoTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/svg+xml": true,
	"image/webp":    true,
}

// logoExtensions maps accepted content types to stored file extensions.
var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

// ValidateLogo checks a logo upload's declared content type and size,
// returning errors keyed on the "logo" field.
func ValidateLogo(contentType string, size int64) Errors {
	errs := Errors{}
	if !allowedLogoTypes[contentType] {
		errs.Add("logo", "Logo must be a PNG, JPG, JPEG, SVG, or WebP file.")
	}
	if size > MaxLogoSize {
		errs.Add("logo", "Logo file size cannot exceed 5MB.")
	}
	if !errs.Any() {
		return nil
	}
	return errs
}

// LogoExtension returns the storage file extension for an accepted logo
// content type, defaulting to ".png" for anything unknown (which validation
// rejects before storage anyway).
func LogoExtension(contentType string) string {
	if ext, ok := logoExtensions[contentType]; ok {
		return ext
	}
	return ".png"
}
