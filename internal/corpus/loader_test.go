package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirBlankLineDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "news.txt", "પ્રથમ લેખ\n\nબીજો લેખ\n\n\n\nત્રીજો લેખ\n")

	articles, errs := NewLoader(DelimiterBlankLine).LoadDir(dir)
	assert.Empty(t, errs)
	require.Len(t, articles, 3)
	assert.Equal(t, "news.txt", articles[0].SourceFile)
	assert.Equal(t, "પ્રથમ લેખ", articles[0].Content)
	assert.Equal(t, "ત્રીજો લેખ", articles[2].Content)
}

func TestLoadDirSlashesDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one//two// //three")

	articles, errs := NewLoader(DelimiterSlashes).LoadDir(dir)
	assert.Empty(t, errs)
	require.Len(t, articles, 3)
	assert.Equal(t, []string{"one", "two", "three"},
		[]string{articles[0].Content, articles[1].Content, articles[2].Content})
}

func TestLoadDirNewlineDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one\ntwo\n\nthree\n")

	articles, errs := NewLoader(DelimiterNewline).LoadDir(dir)
	assert.Empty(t, errs)
	assert.Len(t, articles, 3)
}

func TestLoadDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "feed.json", `[
		{"title": "Election", "content": "full text", "date": "2024-01-01"},
		{"title": "Cricket", "summary": "short summary"},
		{"title": "Empty"}
	]`)
	writeFile(t, dir, "single.json", `{"title": "One", "content": "body"}`)

	articles, errs := NewLoader("").LoadDir(dir)
	assert.Empty(t, errs)
	require.Len(t, articles, 3)
	// feed.json sorts before single.json
	assert.Equal(t, "Election", articles[0].Title)
	assert.Equal(t, "full text", articles[0].Content)
	// content falls back to summary, fully empty entries are dropped
	assert.Equal(t, "short summary", articles[1].Content)
	assert.Equal(t, "One", articles[2].Title)
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.json", "{not json")
	writeFile(t, dir, "good.txt", "article")

	articles, errs := NewLoader(DelimiterBlankLine).LoadDir(dir)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "bad.json")
	require.Len(t, articles, 1)
	assert.Equal(t, "article", articles[0].Content)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	articles, errs := NewLoader(DelimiterBlankLine).LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Empty(t, articles)
	require.Len(t, errs, 1)
}

func TestLoadDirIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "ignored")
	writeFile(t, dir, "a.txt", "kept")

	articles, errs := NewLoader(DelimiterBlankLine).LoadDir(dir)
	assert.Empty(t, errs)
	require.Len(t, articles, 1)
	assert.Equal(t, "kept", articles[0].Content)
}

func TestSplitSentences(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "First one. Second one! Third?")

	articles, errs := NewLoader(DelimiterSentences).LoadDir(dir)
	assert.Empty(t, errs)
	assert.Len(t, articles, 3)
}
