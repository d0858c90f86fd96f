// File: internal/domain/reference.go
package domain

// ReferenceEntry is one row of the reference catalog, e.g.
// {Key: "source_ibuprofen_200mg", URL: "https://.../ibuprofen.pdf"}.
type ReferenceEntry struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// MatchResult is a catalog entry ranked against an answer.
type MatchResult struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
	URL   string  `json:"url"`
}
