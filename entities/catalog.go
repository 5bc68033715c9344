package entities

import (
	"github.com/google/uuid"
)

// Ingredient is reference data and is treated as immutable once a recipe
// line points at it. (name, measurement_unit) is unique, so equal labels
// always mean the same underlying ingredient.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"size:200;index;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:200;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"size:200;uniqueIndex" json:"name"`
	Color string    `gorm:"size:7;uniqueIndex" json:"color"`
	Slug  string    `gorm:"size:200;uniqueIndex" json:"slug"`
}
