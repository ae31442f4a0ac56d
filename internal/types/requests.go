package types

// RecipeListQuery holds the raw query parameters of the recipe listing. The
// list parameters accept either repeated values or one comma-separated value.
type RecipeListQuery struct {
	Include    []string `form:"include"`
	Exclude    []string `form:"exclude"`
	Have       []string `form:"have"`
	Prioritize []string `form:"prioritize"`
	Favorites  string   `form:"favorites"`
	Servings   string   `form:"servings"`
}

// ServingsQuery holds the serving selector accepted by the detail endpoint.
type ServingsQuery struct {
	Servings string `form:"servings"`
}
