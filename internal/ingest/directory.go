package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/async"
)

type DirStats struct {
	Scanned uint32
	Matched uint32
	Queued  uint32
	Failed  uint32
}

// ScanDirectory walks root and returns the audio files under it, sorted by
// path. Hidden entries are skipped when skipHidden is set.
func ScanDirectory(root string, includeExts []string, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	exts := extSet(includeExts)

	var files []string
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !allowed(path, exts) {
			return nil
		}
		stats.Matched++
		files = append(files, path)
		return nil
	})
	if err != nil {
		return files, stats, fmt.Errorf("walk: %w", err)
	}
	return files, stats, nil
}

// EnqueueDirectory queues every audio file under root for processing.
func EnqueueDirectory(ctx context.Context, q async.Queue, root string, mode constants.Mode, skipHidden bool) (DirStats, error) {
	files, stats, err := ScanDirectory(root, nil, skipHidden)
	if err != nil {
		return stats, err
	}
	for _, path := range files {
		if err := q.Enqueue(ctx, async.Job{InputRef: path, Mode: mode}); err != nil {
			stats.Failed++
			if ctx.Err() != nil || errors.Is(err, async.ErrClosed) {
				return stats, err
			}
			continue
		}
		stats.Queued++
	}
	return stats, nil
}
