package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	r1ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	r2ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// twoRecipeSnapshot holds one favorite and one plain recipe.
func twoRecipeSnapshot() Snapshot {
	return Snapshot{Entries: []Entry{
		NewEntry(r1ID, "R1", false, []string{"Banana", "Honey"}, map[string]int{"Energy": 5}),
		NewEntry(r2ID, "R2", true, []string{"Banana", "Kale"}, nil),
	}}
}

func seededSnapshot() Snapshot {
	return Snapshot{Entries: []Entry{
		NewEntry(uuid.New(), "Avocado Berry Silk", false,
			[]string{"Avocado", "Strawberry", "Blueberry", "Almond Milk", "Honey"},
			map[string]int{"Immunity": 4, "Energy": 3, "Strength": 4, "Anti-virality": 4}),
		NewEntry(uuid.New(), "Berry Shield", true,
			[]string{"Strawberry", "Blueberry", "Greek Yogurt", "Almond Milk"},
			map[string]int{"Immunity": 5, "Energy": 4, "Strength": 2, "Anti-virality": 5}),
		NewEntry(uuid.New(), "Cocoa Oat Lift", false,
			[]string{"Oats", "Almond Milk", "Banana", "Greek Yogurt", "Cocoa Powder"},
			map[string]int{"Immunity": 3, "Energy": 4, "Strength": 4, "Anti-virality": 3}),
		NewEntry(uuid.New(), "Coconut Mango Recharge", true,
			[]string{"Coconut Water", "Mango", "Banana", "Spinach"},
			map[string]int{"Immunity": 4, "Energy": 5, "Strength": 3, "Anti-virality": 4}),
		NewEntry(uuid.New(), "Green Strength", false,
			[]string{"Spinach", "Kale", "Banana", "Honey", "Almond Milk"},
			map[string]int{"Immunity": 4, "Energy": 3, "Strength": 5, "Anti-virality": 4}),
		NewEntry(uuid.New(), "Tropical Green Wave", false,
			[]string{"Pineapple", "Spinach", "Kale", "Coconut Water", "Honey"},
			nil),
	}}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i := range entries {
		out[i] = entries[i].Name
	}
	return out
}

func TestTwoRecipeIncludeFavoriteFirst(t *testing.T) {
	got := SelectAndRank(twoRecipeSnapshot(), Criteria{Include: []string{"Banana"}})
	assert.Equal(t, []uuid.UUID{r2ID, r1ID}, got)
}

func TestTwoRecipeExclude(t *testing.T) {
	got := SelectAndRank(twoRecipeSnapshot(), Criteria{Exclude: []string{"Kale"}})
	assert.Equal(t, []uuid.UUID{r1ID}, got)
}

func TestTwoRecipeHave(t *testing.T) {
	got := SelectAndRank(twoRecipeSnapshot(), Criteria{Have: []string{"Banana", "Honey"}})
	assert.Equal(t, []uuid.UUID{r1ID}, got)
}

func TestTwoRecipePrioritize(t *testing.T) {
	// Favorites always lead, so score order is only visible between recipes
	// sharing the same flag.
	snap := twoRecipeSnapshot()
	snap.Entries[1].Favorite = false

	got := SelectAndRank(snap, Criteria{Prioritize: []string{"Energy"}})
	assert.Equal(t, []uuid.UUID{r1ID, r2ID}, got)
}

func TestTwoRecipeNoCriteria(t *testing.T) {
	got := SelectAndRank(twoRecipeSnapshot(), Criteria{})
	assert.Equal(t, []uuid.UUID{r2ID, r1ID}, got)

	snap := seededSnapshot()
	ranked := Rank(snap, Criteria{})
	assert.Equal(t, []string{
		"Berry Shield",
		"Coconut Mango Recharge",
		"Avocado Berry Silk",
		"Cocoa Oat Lift",
		"Green Strength",
		"Tropical Green Wave",
	}, names(ranked))
}

func TestFavoritesOnlyIgnoresIngredientFilters(t *testing.T) {
	snap := seededSnapshot()
	c := Criteria{
		FavoritesOnly: true,
		Include:       []string{"Kale"},
		Exclude:       []string{"Banana"},
		Have:          []string{"Water"},
	}

	ranked := Rank(snap, c)
	assert.Equal(t, []string{"Berry Shield", "Coconut Mango Recharge"}, names(ranked))
	for _, e := range ranked {
		assert.True(t, e.Favorite)
	}
}

func TestIncludeRequiresAllNames(t *testing.T) {
	snap := seededSnapshot()
	include := []string{"Banana", "Spinach"}

	ranked := Rank(snap, Criteria{Include: include})
	assert.Equal(t, []string{"Coconut Mango Recharge", "Green Strength"}, names(ranked))

	selected := map[string]bool{}
	for _, e := range ranked {
		selected[e.Name] = true
		for _, n := range include {
			assert.True(t, e.HasIngredient(n), "%s should contain %s", e.Name, n)
		}
	}
	for _, e := range snap.Entries {
		if selected[e.Name] {
			continue
		}
		assert.False(t, e.HasIngredient("Banana") && e.HasIngredient("Spinach"), e.Name)
	}
}

func TestExcludeRemovesAnyMatch(t *testing.T) {
	exclude := []string{"Kale", "Oats"}
	ranked := Rank(seededSnapshot(), Criteria{Exclude: exclude})

	assert.Equal(t, []string{"Berry Shield", "Coconut Mango Recharge", "Avocado Berry Silk"}, names(ranked))
	for _, e := range ranked {
		for _, n := range exclude {
			assert.False(t, e.HasIngredient(n))
		}
	}
}

func TestHaveIsSupersetOfRecipe(t *testing.T) {
	have := []string{"Coconut Water", "Mango", "Banana", "Spinach", "Kale", "Honey", "Almond Milk"}
	ranked := Rank(seededSnapshot(), Criteria{Have: have})

	assert.Equal(t, []string{"Coconut Mango Recharge", "Green Strength"}, names(ranked))
	haveSet := toSet(have)
	for _, e := range ranked {
		for n := range e.Ingredients {
			_, ok := haveSet[n]
			assert.True(t, ok, "%s needs %s", e.Name, n)
		}
	}
}

func TestFiltersCombine(t *testing.T) {
	ranked := Rank(seededSnapshot(), Criteria{
		Include: []string{"Banana"},
		Exclude: []string{"Kale"},
	})
	assert.Equal(t, []string{"Coconut Mango Recharge", "Cocoa Oat Lift"}, names(ranked))
}

func TestNamesAreTrimmedAndCaseSensitive(t *testing.T) {
	ranked := Rank(seededSnapshot(), Criteria{Include: []string{"  Kale ", ""}})
	assert.Equal(t, []string{"Green Strength", "Tropical Green Wave"}, names(ranked))

	ranked = Rank(seededSnapshot(), Criteria{Include: []string{"kale"}})
	assert.Empty(t, ranked)
}

func TestBlankCriteriaAreNoOps(t *testing.T) {
	snap := seededSnapshot()
	blank := Criteria{Include: []string{" "}, Exclude: []string{""}, Have: []string{"\t"}}

	assert.False(t, blank.HasIngredientFilter())
	assert.True(t, blank.IsZero())
	assert.Equal(t, SelectAndRank(snap, Criteria{}), SelectAndRank(snap, blank))
}

func TestPrioritizeOrdersByScoreThenFavorite(t *testing.T) {
	snap := seededSnapshot()
	ranked := Rank(snap, Criteria{Prioritize: []string{"Strength", "Immunity"}})

	// Favorites keep their score order at the top; non-favorites follow by score,
	// ties keeping alphabetical order.
	assert.Equal(t, []string{
		"Berry Shield",           // 7
		"Coconut Mango Recharge", // 7
		"Green Strength",         // 9
		"Avocado Berry Silk",     // 8
		"Cocoa Oat Lift",         // 7
		"Tropical Green Wave",    // 0
	}, names(ranked))
}

func TestPrioritizeStableAmongEqualScores(t *testing.T) {
	snap := Snapshot{Entries: []Entry{
		NewEntry(uuid.New(), "A", false, nil, map[string]int{"Energy": 3}),
		NewEntry(uuid.New(), "B", false, nil, map[string]int{"Energy": 4}),
		NewEntry(uuid.New(), "C", false, nil, map[string]int{"Energy": 3}),
		NewEntry(uuid.New(), "D", false, nil, nil),
	}}

	ranked := Rank(snap, Criteria{Prioritize: []string{"Energy"}})
	assert.Equal(t, []string{"B", "A", "C", "D"}, names(ranked))
}

func TestUnratedRecipesRankLastNotExcluded(t *testing.T) {
	ranked := Rank(seededSnapshot(), Criteria{Prioritize: []string{"Flexibility"}})
	assert.Len(t, ranked, 6)
	for _, e := range ranked {
		assert.Zero(t, Score(e, []string{"Flexibility"}))
	}
}

func TestDuplicatePriorityCountsOnce(t *testing.T) {
	c := Criteria{Prioritize: []string{"Energy", " Energy", "Energy "}}
	snap := twoRecipeSnapshot()
	snap.Entries[1].Ratings = map[string]int{"Energy": 4}
	snap.Entries[1].Favorite = false

	ranked := Rank(snap, c)
	assert.Equal(t, []string{"R1", "R2"}, names(ranked))
	assert.Equal(t, 5, Score(ranked[0], NormalizeNames(c.Prioritize)))
}

func TestSelectAndRankIsDeterministic(t *testing.T) {
	snap := seededSnapshot()
	c := Criteria{Include: []string{"Almond Milk"}, Prioritize: []string{"Energy", "Anti-virality"}}

	first := SelectAndRank(snap, c)
	second := SelectAndRank(snap, c)
	assert.Equal(t, first, second)
}

func TestRankDoesNotMutateSnapshot(t *testing.T) {
	snap := seededSnapshot()
	before := names(snap.Entries)

	_ = Rank(snap, Criteria{Prioritize: []string{"Energy"}})
	assert.Equal(t, before, names(snap.Entries))
}

func TestEmptyCatalog(t *testing.T) {
	got := SelectAndRank(Snapshot{}, Criteria{Include: []string{"Banana"}})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeNames(t *testing.T) {
	assert.Nil(t, NormalizeNames(nil))
	assert.Equal(t, []string{"Banana", "Kale"}, NormalizeNames([]string{" Banana", "", "Kale", "Banana "}))
}
