package domain

// Article is one searchable unit of news text extracted from the corpus.
type Article struct {
	SourceFile string
	Title      string
	Content    string
}

// SearchResult represents a matching article with a relevance score.
type SearchResult struct {
	Article Article
	Score   float64
}

// FileGroup collects the results that came from a single source file.
type FileGroup struct {
	SourceFile string
	Results    []SearchResult
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Searcher matches a query against an indexed corpus and returns scored
// results. Index must be called once before Search.
type Searcher interface {
	Name() string
	Index(articles []Article) error
	Search(query string, threshold float64) ([]SearchResult, error)
}

// Translator converts query text between the configured language pair.
type Translator interface {
	Translate(text string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// ResultSummarizer produces an overview of a result set for a given query.
type ResultSummarizer interface {
	SummarizeResults(query string, results []SearchResult) (string, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(articles []Article, vectors [][]float64) error
	Search(vector []float64, threshold float64) ([]SearchResult, error)
	Clear() error
}
