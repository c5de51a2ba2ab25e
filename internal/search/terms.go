package search

import "sort"

// TermCount is one popularity-ranked query term.
type TermCount struct {
	Term  string
	Count int
}

// recordTermLocked counts a normalized query term. The counter is the only
// unbounded-growth risk in the engine, so when the distinct-term cap is
// exceeded it compacts to the top half by count, discarding the long tail.
// Caller must hold c.mu.
func (c *Cache) recordTermLocked(query string) {
	if len(query) < 2 {
		return
	}
	c.terms[query]++
	if len(c.terms) <= c.maxTerms {
		return
	}

	ranked := rankTerms(c.terms)
	keep := len(ranked) / 2
	compacted := make(map[string]int, keep)
	for _, tc := range ranked[:keep] {
		compacted[tc.Term] = tc.Count
	}
	c.terms = compacted
}

// PopularTerms returns the top terms by count, ties broken alphabetically.
func (c *Cache) PopularTerms(limit int) []TermCount {
	c.mu.Lock()
	ranked := rankTerms(c.terms)
	c.mu.Unlock()

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func rankTerms(terms map[string]int) []TermCount {
	ranked := make([]TermCount, 0, len(terms))
	for term, count := range terms {
		ranked = append(ranked, TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})
	return ranked
}
