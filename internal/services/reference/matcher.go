// File: internal/services/reference/matcher.go
package reference

import (
	"sort"

	"github.com/pillai-nz/go-pillai/internal/domain"
)

// DefaultTopN is used when a caller asks for a non-positive number of results.
const DefaultTopN = 3

// Score returns the fraction of the key's distinct tokens present as whole
// tokens in answerTokens. A key without tokens scores 0.
func Score(normalizedKey string, answerTokens map[string]struct{}) float64 {
	keyTokens := tokenSet(normalizedKey)
	if len(keyTokens) == 0 {
		return 0
	}
	hits := 0
	for t := range keyTokens {
		if _, ok := answerTokens[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(keyTokens))
}

// FindMatches ranks catalog entries by token overlap with answer and returns at
// most topN of them, best first. Entries scoring 0 or below minScore are
// dropped; ties keep catalog order.
func FindMatches(answer string, catalog *Catalog, topN int, minScore float64) []domain.MatchResult {
	if topN <= 0 {
		topN = DefaultTopN
	}
	results := []domain.MatchResult{}
	if catalog.Len() == 0 {
		return results
	}
	answerTokens := tokenSet(answer)
	if len(answerTokens) == 0 {
		return results
	}

	for _, entry := range catalog.entries {
		label := Normalize(entry.Key)
		score := Score(label, answerTokens)
		if score <= 0 || score < minScore {
			continue
		}
		results = append(results, domain.MatchResult{Score: score, Label: label, URL: entry.URL})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// Matcher binds a catalog to the configured ranking limits.
type Matcher struct {
	catalog *Catalog
	config  *Config
	logger  Logger
}

func NewMatcher(catalog *Catalog, config *Config, logger Logger) *Matcher {
	if catalog == nil {
		catalog = EmptyCatalog()
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Matcher{catalog: catalog, config: config, logger: logger}
}

// Match ranks the catalog against answer using the configured limits.
func (m *Matcher) Match(answer string) []domain.MatchResult {
	results := FindMatches(answer, m.catalog, m.config.TopN, m.config.MinScore)
	m.logger.Debug("reference matching completed",
		"catalog_size", m.catalog.Len(),
		"matches", len(results))
	return results
}

// Catalog exposes the bound catalog.
func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}
