package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gujnews/internal/domain"
)

// Delimiter names accepted by NewLoader.
const (
	DelimiterBlankLine = "blank-line"
	DelimiterNewline   = "newline"
	DelimiterSlashes   = "slashes"
	DelimiterSentences = "sentences"
)

var (
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// Loader reads a directory of .txt and .json files and splits them into
// articles. Failures are collected per file so one bad file does not abort
// the whole load.
type Loader struct {
	delimiter string
}

func NewLoader(delimiter string) *Loader {
	if delimiter == "" {
		delimiter = DelimiterBlankLine
	}
	return &Loader{delimiter: delimiter}
}

// LoadDir reads every .txt and .json file under dir (non-recursive, matching
// the flat data/ directory the corpus uses) and returns the articles in
// file-name order. The error slice reports per-file problems; a missing
// directory yields no articles and a single error.
func (l *Loader) LoadDir(dir string) ([]domain.Article, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("read corpus dir %s: %w", dir, err)}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var articles []domain.Article
	var errs []error
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", name, err))
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".json") {
			parsed, err := parseJSONArticles(name, data)
			if err != nil {
				errs = append(errs, fmt.Errorf("decode %s: %w", name, err))
				continue
			}
			articles = append(articles, parsed...)
			continue
		}
		for _, unit := range l.split(string(data)) {
			articles = append(articles, domain.Article{SourceFile: name, Content: unit})
		}
	}
	return articles, errs
}

func (l *Loader) split(content string) []string {
	var raw []string
	switch l.delimiter {
	case DelimiterNewline:
		raw = strings.Split(content, "\n")
	case DelimiterSlashes:
		raw = strings.Split(content, "//")
	case DelimiterSentences:
		raw = sentenceRe.FindAllString(content, -1)
		if raw == nil {
			raw = []string{content}
		}
	default:
		raw = blankLineRe.Split(content, -1)
	}
	out := make([]string, 0, len(raw))
	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

type jsonArticle struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// parseJSONArticles accepts either a single article object or an array of
// them. Missing fields default to empty strings; entries with no usable text
// are dropped.
func parseJSONArticles(name string, data []byte) ([]domain.Article, error) {
	var items []jsonArticle
	if err := json.Unmarshal(data, &items); err != nil {
		var single jsonArticle
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return nil, err
		}
		items = []jsonArticle{single}
	}
	var out []domain.Article
	for _, it := range items {
		content := strings.TrimSpace(it.Content)
		if content == "" {
			content = strings.TrimSpace(it.Summary)
		}
		if content == "" {
			continue
		}
		out = append(out, domain.Article{
			SourceFile: name,
			Title:      strings.TrimSpace(it.Title),
			Content:    content,
		})
	}
	return out, nil
}
