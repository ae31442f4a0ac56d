package model

import "github.com/google/uuid"

type Benefit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (Benefit) TableName() string {
	return "benefits"
}

// RecipeBenefit rates how strongly a recipe supports a benefit, from 1 to 5.
type RecipeBenefit struct {
	RecipeID  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"recipe_id"`
	BenefitID uint      `gorm:"primaryKey;autoIncrement:false" json:"benefit_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`

	Recipe  Recipe  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Benefit Benefit `gorm:"foreignKey:BenefitID" json:"-"`
}

func (RecipeBenefit) TableName() string {
	return "recipe_benefits"
}
