// Package resolver maps a loosely written file identifier onto an exact
// catalog entry.
//
// Resolution walks a fixed cascade of strategies, from an exact match through
// extension- and directory-insensitive comparisons down to a substring search,
// and returns on the first strategy that matches anything. Within a strategy
// the first entry in catalog order wins, so catalog order is significant.
// Every strategy is a linear scan; the cascade is meant for catalogs of a few
// thousand entries at most.
package resolver

import (
	"context"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/specialistvlad/powerlora/internal/ctxlog"
)

// Tier identifies the strategy that produced a match.
type Tier int

const (
	// TierNone means nothing matched.
	TierNone Tier = iota
	// TierExact: the query equals an entry.
	TierExact
	// TierStem: the query equals an entry with its extension removed.
	TierStem
	// TierQueryStem: both sides have their extension removed.
	TierQueryStem
	// TierBasename: the query equals an entry's file name.
	TierBasename
	// TierQueryBasename: both sides are reduced to their file name.
	TierQueryBasename
	// TierBasenameStem: the query equals an entry's file name without extension.
	TierBasenameStem
	// TierQueryBasenameStem: both sides are reduced to file name without extension.
	TierQueryBasenameStem
	// TierFuzzy: the query occurs somewhere inside an entry.
	TierFuzzy
)

var tierNames = map[Tier]string{
	TierNone:              "none",
	TierExact:             "exact",
	TierStem:              "path without extension",
	TierQueryStem:         "path without extension (query stripped)",
	TierBasename:          "filename",
	TierQueryBasename:     "filename (query stripped)",
	TierBasenameStem:      "filename without extension",
	TierQueryBasenameStem: "filename without extension (query stripped)",
	TierFuzzy:             "fuzzy match",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// strategy compares query(q) against entry(e) for every catalog entry e.
type strategy struct {
	tier  Tier
	query func(string) string
	entry func(string) string
}

func identity(s string) string { return s }

func baseStem(s string) string { return Stem(Base(s)) }

var cascade = []strategy{
	{TierExact, identity, identity},
	{TierStem, identity, Stem},
	{TierQueryStem, Stem, Stem},
	{TierBasename, identity, Base},
	{TierQueryBasename, Base, Base},
	{TierBasenameStem, identity, baseStem},
	{TierQueryBasenameStem, baseStem, baseStem},
}

// Result is the outcome of one traced resolution.
type Result struct {
	Found string
	Tier  Tier
	// Suggestions holds the nearest entries on a miss.
	Suggestions []string
}

// SuggestionLimit caps the suggestions attached to a miss.
const SuggestionLimit = 3

// Lookup resolves query against catalog and traces the outcome: matches
// beyond an exact one are logged at info level with the tier that produced
// them; a miss is logged as a warning along with its suggestions.
func Lookup(ctx context.Context, query string, catalog []string) Result {
	found, tier := Match(query, catalog)
	logger := ctxlog.FromContext(ctx)

	switch tier {
	case TierNone:
		suggestions := Suggest(query, catalog, SuggestionLimit)
		logger.Warn("Could not find lora.", "lora", query, "suggestions", suggestions)
		return Result{Tier: tier, Suggestions: suggestions}
	case TierExact:
	default:
		logger.Info("Found lora by "+tier.String()+".", "lora", query, "found", found, "tier", tier.String())
	}
	return Result{Found: found, Tier: tier}
}

// Resolve returns the catalog entry that best matches query, and whether one
// was found. It traces like Lookup.
func Resolve(ctx context.Context, query string, catalog []string) (string, bool) {
	res := Lookup(ctx, query, catalog)
	return res.Found, res.Tier != TierNone
}

// Match runs the cascade without logging and reports which tier matched.
func Match(query string, catalog []string) (string, Tier) {
	for _, s := range cascade {
		q := s.query(query)
		for _, entry := range catalog {
			if s.entry(entry) == q {
				return entry, s.tier
			}
		}
	}
	// No minimum length or anchoring: a very short query can land on an
	// unrelated entry.
	for _, entry := range catalog {
		if strings.Contains(entry, query) {
			return entry, TierFuzzy
		}
	}
	return "", TierNone
}

// Suggest returns up to limit catalog entries whose file name without
// extension is closest to the query's, nearest first. It only feeds
// diagnostics and never influences Match.
func Suggest(query string, catalog []string, limit int) []string {
	type candidate struct {
		entry string
		dist  int
	}
	q := strings.ToLower(baseStem(query))
	maxDist := len(q)/2 + 1

	var cands []candidate
	for _, entry := range catalog {
		d := levenshtein.Distance(q, strings.ToLower(baseStem(entry)), nil)
		if d <= maxDist {
			cands = append(cands, candidate{entry, d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })

	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.entry)
	}
	return out
}
