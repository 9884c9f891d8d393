// Package index persists the corpus embedding table so it is computed at
// most once per corpus snapshot. The cache file is loaded verbatim when
// present; staleness is handled externally by deleting the file.
package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"gujnews/internal/domain"
)

// Snapshot is the persisted cache entry: the embedding table index-aligned
// with the articles it was computed from.
type Snapshot struct {
	Articles  []domain.Article
	Vectors   [][]float64
	Model     string
	Dimension int
}

// Aligned reports whether the vector table is index-aligned with the
// articles and dimensionally consistent. A violated snapshot is invalid and
// must be rebuilt.
func (s *Snapshot) Aligned() bool {
	if s == nil || len(s.Vectors) != len(s.Articles) || len(s.Articles) == 0 {
		return false
	}
	for _, v := range s.Vectors {
		if len(v) != s.Dimension {
			return false
		}
	}
	return true
}

// Load reads a snapshot from path. A missing file yields os.ErrNotExist.
func Load(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var snap Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically (tmp file + rename) so a crashed write
// never leaves a truncated cache behind.
func Save(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(file).Encode(snap); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// BuildOrLoad returns the persisted snapshot verbatim when a valid one
// exists at path. Otherwise it prepares the embedder over the corpus, embeds
// every article (one provider call each, so the first run may take a while)
// and persists the result. The returned bool reports whether a build
// happened. When only the final save fails, the freshly built snapshot is
// still returned alongside the error so the caller can keep serving from
// memory.
func BuildOrLoad(path string, articles []domain.Article, emb domain.Embedder) (*Snapshot, bool, error) {
	// A missing, unreadable or misaligned cache all fall through to a rebuild.
	if snap, err := Load(path); err == nil && snap.Aligned() {
		return snap, false, nil
	}

	if len(articles) == 0 {
		// Empty corpus: nothing to embed and nothing worth persisting.
		return &Snapshot{Model: emb.Name()}, false, nil
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.Content
	}
	if err := emb.Prepare(texts); err != nil {
		return nil, false, fmt.Errorf("prepare embedder: %w", err)
	}
	vectors := make([][]float64, len(articles))
	for i, a := range articles {
		vec, err := emb.Embed(a.Content)
		if err != nil {
			return nil, false, fmt.Errorf("embed article %d (%s): %w", i, a.SourceFile, err)
		}
		vectors[i] = vec
	}
	built := &Snapshot{
		Articles:  articles,
		Vectors:   vectors,
		Model:     emb.Name(),
		Dimension: emb.Dimension(),
	}
	if err := Save(path, built); err != nil {
		return built, true, fmt.Errorf("save snapshot: %w", err)
	}
	return built, true, nil
}
