package cart

import (
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CartRepository interface {
		GetActiveEntries(ctx context.Context, userID string) ([]*entities.ShoppingCart, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetActiveEntries returns the user's active cart rows newest first, each with
// its recipe's ingredient lines joined to their ingredients by foreign key.
func (r *cartRepository) GetActiveEntries(ctx context.Context, userID string) ([]*entities.ShoppingCart, error) {
	var entries []*entities.ShoppingCart

	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Preload("Recipe.Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position asc")
		}).
		Preload("Recipe.Ingredients.Ingredient").
		Where("user_id = ? AND active = ?", userID, true).
		Order("added_at desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
