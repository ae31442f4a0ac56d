// Package catalog implements the recipe selection engine: it filters a
// materialized catalog snapshot by ingredient criteria or the favorite flag and
// orders the result by benefit priority and favorites.
package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Entry is the engine's read-only view of one recipe.
type Entry struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Favorite    bool                `json:"favorite"`
	Ingredients map[string]struct{} `json:"ingredients"`
	Ratings     map[string]int      `json:"ratings"`
}

// HasIngredient reports whether name is one of the recipe's ingredients.
func (e Entry) HasIngredient(name string) bool {
	_, ok := e.Ingredients[name]
	return ok
}

// Snapshot is a point-in-time view of the catalog. Entries are expected in
// alphabetical order by name; the engine preserves that order among ties.
type Snapshot struct {
	Entries []Entry `json:"entries"`
}

// Criteria holds the selection parameters of a single request.
type Criteria struct {
	Include       []string
	Exclude       []string
	Have          []string
	FavoritesOnly bool
	Prioritize    []string
}

// HasIngredientFilter reports whether any of the ingredient lists is set.
func (c Criteria) HasIngredientFilter() bool {
	return len(NormalizeNames(c.Include)) > 0 ||
		len(NormalizeNames(c.Exclude)) > 0 ||
		len(NormalizeNames(c.Have)) > 0
}

// IsZero reports whether the criteria select and order nothing beyond the defaults.
func (c Criteria) IsZero() bool {
	return !c.FavoritesOnly && !c.HasIngredientFilter() && len(NormalizeNames(c.Prioritize)) == 0
}

// NormalizeNames trims each name, drops empty ones and removes duplicates,
// keeping the first occurrence.
func NormalizeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SelectAndRank returns the ids of the recipes selected by c, in display order.
func SelectAndRank(snap Snapshot, c Criteria) []uuid.UUID {
	ranked := Rank(snap, c)
	ids := make([]uuid.UUID, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].ID
	}
	return ids
}

// Rank filters the snapshot and orders the survivors. The snapshot itself is
// never modified.
func Rank(snap Snapshot, c Criteria) []Entry {
	result := filter(snap.Entries, c)

	if prioritize := NormalizeNames(c.Prioritize); len(prioritize) > 0 {
		scores := make(map[uuid.UUID]int, len(result))
		for i := range result {
			scores[result[i].ID] = Score(result[i], prioritize)
		}
		sort.SliceStable(result, func(a, b int) bool {
			return scores[result[a].ID] > scores[result[b].ID]
		})
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Favorite && !result[b].Favorite
	})

	return result
}

// Score sums the recipe's ratings for the given benefits. Unrated benefits
// count as zero.
func Score(e Entry, prioritize []string) int {
	total := 0
	for _, name := range prioritize {
		total += e.Ratings[name]
	}
	return total
}

func filter(entries []Entry, c Criteria) []Entry {
	result := make([]Entry, 0, len(entries))

	if c.FavoritesOnly {
		for i := range entries {
			if entries[i].Favorite {
				result = append(result, entries[i])
			}
		}
		return result
	}

	include := NormalizeNames(c.Include)
	exclude := NormalizeNames(c.Exclude)
	have := toSet(NormalizeNames(c.Have))

	if len(include) == 0 && len(exclude) == 0 && len(have) == 0 {
		return append(result, entries...)
	}

	for i := range entries {
		if matches(entries[i], include, exclude, have) {
			result = append(result, entries[i])
		}
	}
	return result
}

func matches(e Entry, include, exclude []string, have map[string]struct{}) bool {
	for _, name := range include {
		if !e.HasIngredient(name) {
			return false
		}
	}
	for _, name := range exclude {
		if e.HasIngredient(name) {
			return false
		}
	}
	if len(have) > 0 {
		for name := range e.Ingredients {
			if _, ok := have[name]; !ok {
				return false
			}
		}
	}
	return true
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// NewEntry builds an entry from an ingredient list and a rating map.
func NewEntry(id uuid.UUID, name string, favorite bool, ingredients []string, ratings map[string]int) Entry {
	if ratings == nil {
		ratings = map[string]int{}
	}
	return Entry{
		ID:          id,
		Name:        name,
		Favorite:    favorite,
		Ingredients: toSet(NormalizeNames(ingredients)),
		Ratings:     ratings,
	}
}
