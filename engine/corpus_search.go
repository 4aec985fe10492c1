package engine

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/smhanov/laconic"
)

const snippetRadius = 240

// CorpusSearch implements laconic.SearchProvider over the loaded transcript
// corpus. It records the titles it returns so the adapter can attribute
// sources after the loop finishes. One instance serves one question.
type CorpusSearch struct {
	corpus map[string]string
	topK   int

	seen   map[string]bool
	titles []string
}

// NewCorpusSearch builds a per-question search provider over corpus,
// returning at most topK results per query.
func NewCorpusSearch(corpus map[string]string, topK int) *CorpusSearch {
	if topK <= 0 {
		topK = 5
	}
	return &CorpusSearch{corpus: corpus, topK: topK, seen: make(map[string]bool)}
}

// Search scores every transcript against the query terms and returns the
// best matches with a snippet window around the first hit.
func (s *CorpusSearch) Search(_ context.Context, query string) ([]laconic.SearchResult, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	type match struct {
		title string
		score int
		pos   int
	}
	var matches []match
	for title, body := range s.corpus {
		lowerBody := strings.ToLower(body)
		lowerTitle := strings.ToLower(title)
		score := 0
		pos := -1
		for _, term := range terms {
			if n := strings.Count(lowerBody, term); n > 0 {
				score += n
				if pos < 0 {
					pos = strings.Index(lowerBody, term)
				}
			}
			if strings.Contains(lowerTitle, term) {
				score += 5
			}
		}
		if score > 0 {
			matches = append(matches, match{title: title, score: score, pos: pos})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].title < matches[j].title
	})
	if len(matches) > s.topK {
		matches = matches[:s.topK]
	}

	results := make([]laconic.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, laconic.SearchResult{
			Title:   m.title,
			URL:     "transcript://" + url.PathEscape(m.title),
			Snippet: snippetAround(s.corpus[m.title], m.pos),
		})
		if !s.seen[m.title] {
			s.seen[m.title] = true
			s.titles = append(s.titles, m.title)
		}
	}
	return results, nil
}

// Titles reports every transcript title returned so far, in first-hit order.
func (s *CorpusSearch) Titles() []string {
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}

func queryTerms(query string) []string {
	var terms []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, `.,;:!?"'()[]`)
		if len(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

func snippetAround(body string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	start := pos - snippetRadius
	if start < 0 {
		start = 0
	}
	end := pos + snippetRadius
	if end > len(body) {
		end = len(body)
	}
	return strings.Join(strings.Fields(body[start:end]), " ")
}
