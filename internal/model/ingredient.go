package model

import "github.com/google/uuid"

type Ingredient struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// RecipeIngredient links a recipe to an ingredient with the quantity for one
// and for two servings.
type RecipeIngredient struct {
	RecipeID     uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"recipe_id"`
	IngredientID uint      `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Qty1         string    `gorm:"column:qty_1;not null" json:"qty_1"`
	Qty2         string    `gorm:"column:qty_2;not null" json:"qty_2"`
	Unit         *string   `gorm:"size:50" json:"unit,omitempty"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
