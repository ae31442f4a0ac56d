package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON array column.
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null;index" json:"name"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Instructions StringList `gorm:"type:text;not null" json:"instructions"`
	ImageRef     string     `gorm:"size:255" json:"image_ref,omitempty"`
	Favorite     bool       `gorm:"not null;default:false" json:"favorite"`
}

// BeforeCreate assigns an id to recipes created without one.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Recipe) TableName() string {
	return "recipes"
}
