package media

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the source containers accepted for practice
// material. Anything ffmpeg can open works in principle; this is the
// surface exposed to file pickers.
var SupportedExtensions = []string{
	".wav", ".mp3", ".flac", ".ogg", ".aac", ".m4a",
	".mp4", ".mov", ".avi", ".mkv", ".webm",
}

// IsSupported reports whether the file extension is a known source format.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsWAV reports whether the path points to a WAV file, which gets the
// pure-Go decode path.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
