package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillai-nz/go-pillai/internal/domain"
)

func catalogOf(pairs ...string) *Catalog {
	var entries []domain.ReferenceEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, domain.ReferenceEntry{Key: pairs[i], URL: pairs[i+1]})
	}
	return NewCatalog(entries)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"source_ibuprofen_200mg", "ibuprofen 200mg"},
		{"source_Paracetamol,Codeine", "paracetamol codeine"},
		{"Amoxicillin_Capsules", "amoxicillin capsules"},
		{"", ""},
		{"resource_x", "resource x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.key), "Normalize(%q)", tt.key)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, key := range []string{"source_ibuprofen_200mg", "A,B_C", "source_", "plain"} {
		once := Normalize(key)
		assert.Equal(t, once, Normalize(once), "key %q", key)
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"take", "ibuprofen", "200mg", "with", "food"},
		Tokenize("Take Ibuprofen-200mg, with food!"))
	assert.Equal(t, []string{"ibuprofen"}, Tokenize("ＩＢＵＰＲＯＦＥＮ"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize(" ,.;_ "))
	assert.Equal(t, []string{"parac", "tamol"}, Tokenize("paracétamol"))
}

func TestFindMatches_IbuprofenScenario(t *testing.T) {
	catalog := catalogOf("source_ibuprofen_200mg", "http://x/ibuprofen.pdf")

	results := FindMatches("You can take ibuprofen with food.", catalog, 3, 0.1)

	require.Len(t, results, 1)
	assert.Equal(t, "ibuprofen 200mg", results[0].Label)
	assert.Equal(t, "http://x/ibuprofen.pdf", results[0].URL)
	assert.InDelta(t, 0.5, results[0].Score, 1e-9)
}

func TestFindMatches_FullTokenPresenceScoresOne(t *testing.T) {
	catalog := catalogOf("source_ibuprofen_200mg", "u")

	results := FindMatches("Ibuprofen 200mg tablets are fine.", catalog, 3, 0.5)

	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)
}

func TestFindMatches_OrderAndNoPadding(t *testing.T) {
	catalog := catalogOf(
		"source_paracetamol_500mg", "http://x/para.pdf", // 1 of 2 tokens -> 0.5
		"source_codeine_phosphate_tablets_30mg_nz", "http://x/codeine.pdf", // 4 of 5 -> 0.8
		"source_warfarin", "http://x/warfarin.pdf", // no overlap
	)
	answer := "Paracetamol is often combined with codeine phosphate tablets at 30mg."

	results := FindMatches(answer, catalog, 3, 0.1)

	require.Len(t, results, 2)
	assert.Equal(t, "http://x/codeine.pdf", results[0].URL)
	assert.InDelta(t, 0.8, results[0].Score, 1e-9)
	assert.Equal(t, "http://x/para.pdf", results[1].URL)
	assert.InDelta(t, 0.5, results[1].Score, 1e-9)
}

func TestFindMatches_SortedDescending(t *testing.T) {
	catalog := catalogOf(
		"source_a_b_c_d", "1",
		"source_a", "2",
		"source_a_b", "3",
		"source_a_b_c", "4",
		"source_z", "5",
	)

	results := FindMatches("a b c", catalog, 10, 0)

	require.Len(t, results, 4)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestFindMatches_TiesKeepCatalogOrder(t *testing.T) {
	catalog := catalogOf(
		"source_zinc", "first",
		"source_aspirin", "second",
		"source_iron", "third",
	)

	results := FindMatches("iron, aspirin and zinc", catalog, 5, 0.5)

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].URL)
	assert.Equal(t, "second", results[1].URL)
	assert.Equal(t, "third", results[2].URL)
}

func TestFindMatches_TopNTruncates(t *testing.T) {
	catalog := catalogOf("source_a", "1", "source_b", "2", "source_c", "3", "source_d", "4")

	assert.Len(t, FindMatches("a b c d", catalog, 2, 0.5), 2)
	assert.Len(t, FindMatches("a b c d", catalog, 0, 0.5), DefaultTopN)
}

func TestFindMatches_EmptyInputs(t *testing.T) {
	assert.Empty(t, FindMatches("ibuprofen", EmptyCatalog(), 3, 0.5))
	assert.Empty(t, FindMatches("ibuprofen", nil, 3, 0.5))

	catalog := catalogOf("source_ibuprofen", "u")
	assert.Empty(t, FindMatches("", catalog, 3, 0.5))
	// min score zero still never returns zero-score entries
	assert.Empty(t, FindMatches("", catalog, 3, 0))
	assert.NotNil(t, FindMatches("", catalog, 3, 0))
}

func TestFindMatches_ZeroOverlapExcludedAtZeroFloor(t *testing.T) {
	catalog := catalogOf("source_warfarin", "w", "source_ibuprofen", "i")

	results := FindMatches("ibuprofen helps with pain", catalog, 5, 0)

	require.Len(t, results, 1)
	assert.Equal(t, "i", results[0].URL)
}

func TestFindMatches_WholeTokensOnly(t *testing.T) {
	catalog := catalogOf("source_acetaminophen", "u")

	assert.Empty(t, FindMatches("paracetamol and acetaminophenol", catalog, 3, 0))
}

func TestFindMatches_DegenerateKey(t *testing.T) {
	catalog := catalogOf("source_", "empty", "source___,", "separators", "source_aspirin", "a")

	results := FindMatches("aspirin", catalog, 5, 0)

	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].URL)
}

func TestFindMatches_RepeatedKeyTokensCountOnce(t *testing.T) {
	catalog := catalogOf("source_iron_iron_tablets", "u")

	results := FindMatches("iron supplements", catalog, 3, 0)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.5, results[0].Score, 1e-9)
}

func TestMatcher_UsesConfig(t *testing.T) {
	catalog := catalogOf("source_ibuprofen_200mg", "u1", "source_aspirin", "u2")
	m := NewMatcher(catalog, &Config{TopN: 1, MinScore: 0.6}, &testLogger{})

	results := m.Match("aspirin or ibuprofen")

	require.Len(t, results, 1)
	assert.Equal(t, "u2", results[0].URL)
	assert.Equal(t, 2, m.Catalog().Len())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{TopN: 0, MinScore: 0.5}).Validate())
	assert.Error(t, (&Config{TopN: 3, MinScore: 1.5}).Validate())
	assert.Error(t, (&Config{TopN: 3, MinScore: -0.1}).Validate())
}

type testLogger struct {
	warnings []string
}

func (l *testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *testLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *testLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *testLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
