package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gujnews/internal/corpus"
	"gujnews/internal/domain"
)

// SearchService wires the pipeline together: corpus load, per-strategy
// indexing, optional query translation, search, and grouping for display.
type SearchService struct {
	searchers   map[string]domain.Searcher
	defaultMode string
	translator  domain.Translator        // nil disables translation
	overview    domain.Summarizer        // corpus overview for the TUI header
	results     domain.ResultSummarizer  // nil disables AI result summaries
	logger      *zap.Logger
	threshold   float64
	limit       int

	articles []domain.Article
	loadErrs []error
}

// Options carries the optional collaborators and result shaping defaults.
type Options struct {
	Translator       domain.Translator
	Overview         domain.Summarizer
	ResultSummarizer domain.ResultSummarizer
	Logger           *zap.Logger
	Threshold        float64
	Limit            int
}

func New(searchers []domain.Searcher, defaultMode string, opts Options) (*SearchService, error) {
	if len(searchers) == 0 {
		return nil, fmt.Errorf("at least one searcher is required")
	}
	m := make(map[string]domain.Searcher, len(searchers))
	for _, s := range searchers {
		m[s.Name()] = s
	}
	if defaultMode == "" {
		defaultMode = searchers[0].Name()
	}
	if _, ok := m[defaultMode]; !ok {
		return nil, fmt.Errorf("unknown default search mode: %s", defaultMode)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	return &SearchService{
		searchers:   m,
		defaultMode: defaultMode,
		translator:  opts.Translator,
		overview:    opts.Overview,
		results:     opts.ResultSummarizer,
		logger:      logger,
		threshold:   opts.Threshold,
		limit:       limit,
	}, nil
}

// Ingest loads the corpus directory and indexes it into every strategy.
// Per-file load failures are kept for reporting but do not abort the load.
// The returned string is a short overview shown in the TUI header.
func (s *SearchService) Ingest(loader *corpus.Loader, dir string) (string, error) {
	articles, errs := loader.LoadDir(dir)
	s.loadErrs = errs
	for _, err := range errs {
		s.logger.Warn("corpus load", zap.Error(err))
	}
	if err := s.IndexArticles(articles); err != nil {
		return "", err
	}

	files := map[string]struct{}{}
	for _, a := range articles {
		files[a.SourceFile] = struct{}{}
	}
	head := fmt.Sprintf("%d articles from %d files", len(articles), len(files))
	if s.overview == nil || len(articles) == 0 {
		return head, nil
	}
	var all strings.Builder
	for _, a := range articles {
		all.WriteString(a.Content)
		all.WriteString("\n")
	}
	summary, err := s.overview.Summarize(all.String(), 3)
	if err != nil || summary == "" {
		return head, nil
	}
	return head + ". " + summary, nil
}

// IndexArticles replaces the corpus and rebuilds every strategy index.
func (s *SearchService) IndexArticles(articles []domain.Article) error {
	s.articles = articles
	for _, searcher := range s.searchers {
		if err := searcher.Index(articles); err != nil {
			return fmt.Errorf("index %s: %w", searcher.Name(), err)
		}
	}
	return nil
}

// Params describes one search request.
type Params struct {
	Query     string
	Mode      string   // empty selects the configured default
	Threshold *float64 // nil selects the configured default
	Translate bool
	Summarize bool
	Limit     int // 0 selects the configured default
}

// Result is everything the presentation layers need for one query.
type Result struct {
	Query           string             `json:"query"`
	TranslatedQuery string             `json:"translated_query,omitempty"`
	Mode            string             `json:"mode"`
	Threshold       float64            `json:"threshold"`
	Total           int                `json:"total"`
	Groups          []domain.FileGroup `json:"groups"`
	Summary         string             `json:"summary,omitempty"`
}

// Search runs one query through translation (optional), the selected
// strategy, limiting, grouping and the optional AI summary. A translation or
// embedding provider failure aborts the query with no results; a summary
// failure only drops the summary.
func (s *SearchService) Search(p Params) (*Result, error) {
	mode := p.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	searcher, ok := s.searchers[mode]
	if !ok {
		return nil, fmt.Errorf("unknown search mode: %s", mode)
	}
	threshold := s.threshold
	if p.Threshold != nil {
		threshold = *p.Threshold
	}
	limit := p.Limit
	if limit <= 0 {
		limit = s.limit
	}

	res := &Result{Query: p.Query, Mode: mode, Threshold: threshold, Groups: []domain.FileGroup{}}
	query := strings.TrimSpace(p.Query)
	if query == "" {
		return res, nil
	}
	if p.Translate && s.translator != nil {
		translated, err := s.translator.Translate(query)
		if err != nil {
			return nil, fmt.Errorf("translate query: %w", err)
		}
		res.TranslatedQuery = translated
		query = translated
	}

	matches, err := searcher.Search(query, threshold)
	if err != nil {
		return nil, err
	}
	res.Total = len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	res.Groups = GroupBySource(matches)

	if p.Summarize && s.results != nil && len(matches) > 0 {
		summary, err := s.results.SummarizeResults(query, matches)
		if err != nil {
			s.logger.Warn("result summary failed", zap.Error(err))
		} else {
			res.Summary = summary
		}
	}
	return res, nil
}

// Articles returns the loaded corpus.
func (s *SearchService) Articles() []domain.Article { return s.articles }

// LoadErrors returns the per-file problems encountered during Ingest.
func (s *SearchService) LoadErrors() []error { return s.loadErrs }

// Modes lists the available search strategies.
func (s *SearchService) Modes() []string {
	out := make([]string, 0, len(s.searchers))
	for name := range s.searchers {
		out = append(out, name)
	}
	return out
}

// DefaultMode returns the configured default strategy name.
func (s *SearchService) DefaultMode() string { return s.defaultMode }

// DefaultThreshold returns the configured default similarity threshold.
func (s *SearchService) DefaultThreshold() float64 { return s.threshold }

// GroupBySource groups results by their source file, keeping files in order
// of first appearance and results in their ranked order within each file.
func GroupBySource(results []domain.SearchResult) []domain.FileGroup {
	groups := []domain.FileGroup{}
	pos := map[string]int{}
	for _, r := range results {
		i, ok := pos[r.Article.SourceFile]
		if !ok {
			i = len(groups)
			pos[r.Article.SourceFile] = i
			groups = append(groups, domain.FileGroup{SourceFile: r.Article.SourceFile})
		}
		groups[i].Results = append(groups[i].Results, r)
	}
	return groups
}
