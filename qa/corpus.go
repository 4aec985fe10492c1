package qa

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Corpus maps transcript titles to their full text.
type Corpus map[string]string

// LoadTranscripts reads every .txt file directly inside dir into a Corpus.
// Any unreadable file fails the whole load; a partial corpus is not a
// supported state. A directory with no matching files returns an empty,
// non-nil Corpus and the caller decides whether that is fatal.
func LoadTranscripts(dir string) (Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read transcripts dir: %w", err)
	}

	corpus := make(Corpus)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		corpus[TitleFromFilename(name)] = string(b)
	}
	return corpus, nil
}

// TitleFromFilename derives a display title from a transcript filename.
// The naming convention is <show>_<episode>_<Title_With_Underscores>.txt;
// files that don't follow it keep their bare stem.
func TitleFromFilename(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(stem, "_", 3)
	if len(parts) < 3 {
		return stem
	}
	title := strings.ReplaceAll(parts[2], "_", " ")
	// Transcripts converted from .vtt subtitles keep that extension in the stem.
	return strings.ReplaceAll(title, ".vtt", "")
}
