package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gujnews/internal/domain"
)

func lexicalFixture() []domain.Article {
	return []domain.Article{
		{SourceFile: "politics.txt", Content: "ગુજરાત વિધાનસભા ચૂંટણી યોજાશે"},
		{SourceFile: "sports.txt", Content: "Cricket team wins the final match"},
		{SourceFile: "politics.txt", Title: "Budget", Content: "State budget announced today"},
	}
}

func TestSubstringSearch(t *testing.T) {
	s := NewSubstringSearcher()
	require.NoError(t, s.Index(lexicalFixture()))

	results, err := s.Search("ચૂંટણી", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "politics.txt", results[0].Article.SourceFile)
	assert.Equal(t, 1.0, results[0].Score)

	// case-insensitive, and titles are searched too
	results, err = s.Search("CRICKET", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	results, err = s.Search("budget", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSubstringNoMatchAndEmptyQuery(t *testing.T) {
	s := NewSubstringSearcher()
	require.NoError(t, s.Index(lexicalFixture()))

	results, err := s.Search("football", 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search("   ", 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	// threshold above 1 excludes even exact matches
	results, err = s.Search("cricket", 1.5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFuzzySearchRanksByOverlap(t *testing.T) {
	s := NewFuzzySearcher()
	require.NoError(t, s.Index([]domain.Article{
		{SourceFile: "a.txt", Content: "cricket team wins match"},
		{SourceFile: "b.txt", Content: "cricket news from gujarat"},
		{SourceFile: "c.txt", Content: "unrelated politics story"},
	}))

	results, err := s.Search("cricket match", 0.1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.txt", results[0].Article.SourceFile)
	assert.Equal(t, "b.txt", results[1].Article.SourceFile)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFuzzySearchStableTieBreak(t *testing.T) {
	s := NewFuzzySearcher()
	require.NoError(t, s.Index([]domain.Article{
		{SourceFile: "first.txt", Content: "election results"},
		{SourceFile: "second.txt", Content: "election outcome"},
	}))

	// Same overlap with a one-word query: insertion order decides.
	results, err := s.Search("election", 0.1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "first.txt", results[0].Article.SourceFile)
}

func TestFuzzySearchEmptyQuery(t *testing.T) {
	s := NewFuzzySearcher()
	require.NoError(t, s.Index(lexicalFixture()))
	results, err := s.Search("", 0.1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestOchiai(t *testing.T) {
	a := tokenSet("one two")
	b := tokenSet("one two")
	assert.InDelta(t, 1.0, ochiai(a, b), 1e-9)
	assert.Equal(t, 0.0, ochiai(a, tokenSet("")))
	assert.InDelta(t, 0.5, ochiai(tokenSet("one"), tokenSet("one two three four")), 1e-9)
}
