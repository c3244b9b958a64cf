// Package documents loads the static trip documents the specialists answer from.
package documents

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

const fileExt = ".txt"

// Document keys, one per trip document file (filename without extension).
const (
	KeyFlight        = "flight"
	KeyCarRental     = "car_rental"
	KeyRoutesToAosta = "routes_to_aosta"
	KeyAostaValley   = "aosta_valley"
	KeyChamonix      = "chamonix"
	KeyAnnecyGeneva  = "annecy_geneva"
)

var keys = []string{
	KeyFlight,
	KeyCarRental,
	KeyRoutesToAosta,
	KeyAostaValley,
	KeyChamonix,
	KeyAnnecyGeneva,
}

// Keys returns the fixed document key set.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Load reads the known trip documents from dir and returns them keyed by filename stem.
// A missing directory or file is not an error: the key is left out and a warning is logged,
// so callers degrade to empty context instead of failing.
func Load(dir string) map[string]string {
	docs := make(map[string]string, len(keys))

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logx.Warn().
			Str("component", "documents").
			Str("dir", dir).
			Msg("documents directory not found; continuing without documents")
		return docs
	}

	for _, key := range keys {
		path := filepath.Join(dir, key+fileExt)
		b, err := os.ReadFile(path)
		if err != nil {
			ev := logx.Warn().Str("component", "documents").Str("path", path)
			if !errors.Is(err, fs.ErrNotExist) {
				ev = ev.Err(err)
			}
			ev.Msg("document not loaded")
			continue
		}
		docs[key] = string(b)
	}

	logx.Info().
		Str("component", "documents").
		Str("dir", dir).
		Int("loaded", len(docs)).
		Int("expected", len(keys)).
		Msg("trip documents loaded")
	return docs
}
