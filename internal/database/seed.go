package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/blendora/backend/internal/model"
)

//go:embed seed/smoothies.json
var defaultSeed []byte

// Seed is the on-disk description of a catalog.
type Seed struct {
	Ingredients []string      `json:"ingredients" yaml:"ingredients" validate:"dive,required"`
	Benefits    []BenefitSeed `json:"benefits" yaml:"benefits" validate:"dive"`
	Recipes     []RecipeSeed  `json:"recipes" yaml:"recipes" validate:"dive"`
}

type BenefitSeed struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
}

type RecipeSeed struct {
	Name         string             `json:"name" yaml:"name" validate:"required"`
	Description  string             `json:"description" yaml:"description"`
	Image        string             `json:"image,omitempty" yaml:"image,omitempty"`
	Favorite     bool               `json:"favorite,omitempty" yaml:"favorite,omitempty"`
	Instructions []string           `json:"instructions" yaml:"instructions"`
	Ingredients  []IngredientAmount `json:"ingredients" yaml:"ingredients" validate:"dive"`
	Benefits     map[string]int     `json:"benefits" yaml:"benefits" validate:"dive,keys,required,endkeys,min=1,max=5"`
}

type IngredientAmount struct {
	Name string  `json:"name" yaml:"name" validate:"required"`
	Qty1 string  `json:"qty_1" yaml:"qty_1"`
	Qty2 string  `json:"qty_2" yaml:"qty_2"`
	Unit *string `json:"unit" yaml:"unit"`
}

var validate = validator.New()

// DefaultSeed returns the catalog bundled with the binary.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed, ".json")
}

// LoadSeedFile reads a JSON or YAML seed file, chosen by extension.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("seed file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return ParseSeed(data, filepath.Ext(path))
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(data []byte, ext string) (*Seed, error) {
	var seed Seed
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("failed to decode yaml seed: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("failed to decode json seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q", ext)
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate trims every name in place, then checks field constraints and that
// every recipe only references declared ingredients and benefits. Names that
// are blank once trimmed are rejected.
func (s *Seed) Validate() error {
	if err := s.normalize(); err != nil {
		return err
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	ingredients := make(map[string]struct{}, len(s.Ingredients))
	for _, name := range s.Ingredients {
		if _, dup := ingredients[name]; dup {
			return fmt.Errorf("invalid seed: duplicate ingredient %q", name)
		}
		ingredients[name] = struct{}{}
	}
	benefits := make(map[string]struct{}, len(s.Benefits))
	for _, b := range s.Benefits {
		if _, dup := benefits[b.Name]; dup {
			return fmt.Errorf("invalid seed: duplicate benefit %q", b.Name)
		}
		benefits[b.Name] = struct{}{}
	}

	for _, r := range s.Recipes {
		used := make(map[string]struct{}, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			if _, ok := ingredients[ing.Name]; !ok {
				return fmt.Errorf("invalid seed: recipe %q uses unknown ingredient %q", r.Name, ing.Name)
			}
			if _, dup := used[ing.Name]; dup {
				return fmt.Errorf("invalid seed: recipe %q lists ingredient %q twice", r.Name, ing.Name)
			}
			used[ing.Name] = struct{}{}
		}
		for name := range r.Benefits {
			if _, ok := benefits[name]; !ok {
				return fmt.Errorf("invalid seed: recipe %q rates unknown benefit %q", r.Name, name)
			}
		}
	}
	return nil
}

func (s *Seed) normalize() error {
	for i := range s.Ingredients {
		s.Ingredients[i] = strings.TrimSpace(s.Ingredients[i])
	}
	for i := range s.Benefits {
		s.Benefits[i].Name = strings.TrimSpace(s.Benefits[i].Name)
	}
	for i := range s.Recipes {
		r := &s.Recipes[i]
		r.Name = strings.TrimSpace(r.Name)
		for j := range r.Ingredients {
			r.Ingredients[j].Name = strings.TrimSpace(r.Ingredients[j].Name)
		}
		if len(r.Benefits) == 0 {
			continue
		}
		ratings := make(map[string]int, len(r.Benefits))
		for name, rating := range r.Benefits {
			name = strings.TrimSpace(name)
			if _, dup := ratings[name]; dup {
				return fmt.Errorf("invalid seed: recipe %q rates benefit %q twice", r.Name, name)
			}
			ratings[name] = rating
		}
		r.Benefits = ratings
	}
	return nil
}

// ApplySeed writes the seed in a single transaction. With reset, all catalog
// rows are removed first; otherwise ingredients and benefits that already
// exist by name are reused.
func ApplySeed(ctx context.Context, db *gorm.DB, seed *Seed, reset bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := clearCatalog(tx); err != nil {
				return err
			}
		}

		ingredientIDs, err := upsertIngredients(tx, seed.Ingredients)
		if err != nil {
			return err
		}
		benefitIDs, err := upsertBenefits(tx, seed.Benefits)
		if err != nil {
			return err
		}

		for _, rs := range seed.Recipes {
			recipe := model.Recipe{
				Name:         rs.Name,
				Description:  rs.Description,
				Instructions: model.StringList(rs.Instructions),
				ImageRef:     rs.Image,
				Favorite:     rs.Favorite,
			}
			if err := tx.Create(&recipe).Error; err != nil {
				return fmt.Errorf("failed to create recipe %q: %w", rs.Name, err)
			}

			for _, ing := range rs.Ingredients {
				link := model.RecipeIngredient{
					RecipeID:     recipe.ID,
					IngredientID: ingredientIDs[ing.Name],
					Qty1:         ing.Qty1,
					Qty2:         ing.Qty2,
					Unit:         ing.Unit,
				}
				if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
					return fmt.Errorf("failed to link ingredient %q to %q: %w", ing.Name, rs.Name, err)
				}
			}

			for name, rating := range rs.Benefits {
				link := model.RecipeBenefit{
					RecipeID:  recipe.ID,
					BenefitID: benefitIDs[name],
					Rating:    rating,
				}
				if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
					return fmt.Errorf("failed to rate benefit %q for %q: %w", name, rs.Name, err)
				}
			}
		}
		return nil
	})
}

func clearCatalog(tx *gorm.DB) error {
	for _, m := range []interface{}{
		&model.RecipeBenefit{},
		&model.RecipeIngredient{},
		&model.Recipe{},
		&model.Ingredient{},
		&model.Benefit{},
	} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", m, err)
		}
	}
	return nil
}

func upsertIngredients(tx *gorm.DB, names []string) (map[string]uint, error) {
	if len(names) > 0 {
		rows := make([]model.Ingredient, len(names))
		for i, n := range names {
			rows[i] = model.Ingredient{Name: n}
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to insert ingredients: %w", err)
		}
	}

	var all []model.Ingredient
	if err := tx.Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}
	ids := make(map[string]uint, len(all))
	for _, ing := range all {
		ids[ing.Name] = ing.ID
	}
	return ids, nil
}

func upsertBenefits(tx *gorm.DB, benefits []BenefitSeed) (map[string]uint, error) {
	if len(benefits) > 0 {
		rows := make([]model.Benefit, len(benefits))
		for i, b := range benefits {
			rows[i] = model.Benefit{Name: b.Name, Description: b.Description}
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to insert benefits: %w", err)
		}
	}

	var all []model.Benefit
	if err := tx.Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to load benefits: %w", err)
	}
	ids := make(map[string]uint, len(all))
	for _, b := range all {
		ids[b.Name] = b.ID
	}
	return ids, nil
}
