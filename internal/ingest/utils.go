package ingest

import (
	"path/filepath"
	"strings"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
)

// AllowedExt checks if a file extension is a supported audio format.
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AudioExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

func allowed(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

// extSet builds a lookup set from includeExts, or the audio defaults when empty.
func extSet(includeExts []string) map[string]struct{} {
	if len(includeExts) == 0 {
		return constants.AudioExtensions
	}
	exts := make(map[string]struct{}, len(includeExts))
	for _, e := range includeExts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			exts[e] = struct{}{}
		}
	}
	return exts
}
