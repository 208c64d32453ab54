package validator

import (
	"path/filepath"
	"strings"
)

var (
	// images the optimizer can decode
	imageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}

	videoExts = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".webm": true,
	}
)

// IsImage verify is image
func IsImage(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		return false
	}
	return imageExts[strings.ToLower(ext)]
}

// IsVideo verify is video
func IsVideo(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		return false
	}
	return videoExts[strings.ToLower(ext)]
}

// IsImageFile reports whether the file name has an image extension.
func IsImageFile(name string) bool {
	return IsImage(filepath.Ext(name))
}

// IsVideoFile reports whether the file name has a video extension.
func IsVideoFile(name string) bool {
	return IsVideo(filepath.Ext(name))
}
