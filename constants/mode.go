package constants

import "strings"

// Mode is the processing mode of an orchestrated job.
type Mode string

const (
	ModeBatch       Mode = "batch"
	ModeInteractive Mode = "interactive"
)

// ParseMode lowercases and validates a mode label.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeBatch:
		return ModeBatch, true
	case ModeInteractive:
		return ModeInteractive, true
	}
	return "", false
}

// Quantization is the weight encoding of the active model files.
type Quantization string

const (
	Quantization4Bit Quantization = "4bit"
	Quantization8Bit Quantization = "8bit"
)

// AudioExtensions holds the audio file extensions picked up by the spool watcher.
var AudioExtensions = map[string]struct{}{
	"wav":  {},
	"m4a":  {},
	"mp3":  {},
	"ogg":  {},
	"flac": {},
	"aac":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
