package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient, replaceTags, replaceLines bool) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error)
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)

		GetFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*entities.Favorite, error)
		SetFavoriteActive(ctx context.Context, favoriteID uuid.UUID, active bool) error
		ActivateFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		IsRecipeFavorited(ctx context.Context, userID, recipeID string) (bool, error)

		GetCartEntry(ctx context.Context, userID, recipeID uuid.UUID) (*entities.ShoppingCart, error)
		SetCartEntryActive(ctx context.Context, entryID uuid.UUID, active bool) error
		ActivateCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error
		IsRecipeInCart(ctx context.Context, userID, recipeID string) (bool, error)

		IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe writes the recipe row, its tag associations and its
// ingredient lines in a single transaction so a failure at any step leaves
// nothing behind.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Omit("Tags.*").Association("Tags").Append(tags); err != nil {
			return err
		}
		for _, line := range lines {
			line.RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateRecipe saves the scalar fields and, when requested, replaces the tag
// set and the full ingredient-line set. Runs in one transaction: the recipe
// keeps its pre-update state on any failure.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag, lines []*entities.RecipeIngredient, replaceTags, replaceLines bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"description":  recipe.Description,
			"cooking_time": recipe.CookingTime,
			"image_url":    recipe.ImageURL,
		}
		if err := tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Updates(updates).Error; err != nil {
			return err
		}

		if replaceTags {
			if err := tx.Model(recipe).Omit("Tags.*").Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if replaceLines {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for _, line := range lines {
				line.RecipeID = recipe.ID
			}
			if len(lines) > 0 {
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.slug asc") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.position asc") }).
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) recipesQuery(ctx context.Context, filter domain.RecipeFilter, viewerID string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Model(&entities.Tag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	// The favorite and cart flags only bind for an authenticated viewer,
	// matching the original filter behavior.
	if viewerID != "" {
		if filter.IsFavorited {
			query = query.
				Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
				Where("favorites.user_id = ? AND favorites.active = ?", viewerID, true)
		}
		if filter.IsInShoppingCart {
			query = query.
				Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
				Where("shopping_carts.user_id = ? AND shopping_carts.active = ?", viewerID, true)
		}
	}

	return query
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.recipesQuery(ctx, filter, viewerID).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.recipesQuery(ctx, filter, viewerID).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.slug asc") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.position asc") }).
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ? AND favorites.active = ?", userID, true)
	}

	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base().
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.slug asc") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.position asc") }).
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("favorites.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*entities.Favorite, error) {
	var favorite entities.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *recipeRepository) SetFavoriteActive(ctx context.Context, favoriteID uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("id = ?", favoriteID).
		Update("active", active).Error
}

// ActivateFavorite finds or creates the unique (user, recipe) row and sets it
// active. The unique index is the source of truth under concurrent toggles: a
// create that loses the race falls back to flipping the existing row.
func (r *recipeRepository) ActivateFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	var existing entities.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error

	if err == nil {
		return r.SetFavoriteActive(ctx, existing.ID, true)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	favorite := entities.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		Active:    true,
		CreatedAt: time.Now(),
	}
	createErr := r.db.WithContext(ctx).Create(&favorite).Error
	if createErr == nil {
		return nil
	}

	// Concurrent toggle created the row first; flip it instead.
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error; err != nil {
		return createErr
	}
	return r.SetFavoriteActive(ctx, existing.ID, true)
}

func (r *recipeRepository) IsRecipeFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ? AND active = ?", userID, recipeID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetCartEntry(ctx context.Context, userID, recipeID uuid.UUID) (*entities.ShoppingCart, error) {
	var entry entities.ShoppingCart
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *recipeRepository) SetCartEntryActive(ctx context.Context, entryID uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("id = ?", entryID).
		Update("active", active).Error
}

// ActivateCartEntry mirrors ActivateFavorite for shopping cart rows.
// Re-adding an inactive entry reactivates the same row; added_at is not
// refreshed.
func (r *recipeRepository) ActivateCartEntry(ctx context.Context, userID, recipeID uuid.UUID) error {
	var existing entities.ShoppingCart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error

	if err == nil {
		return r.SetCartEntryActive(ctx, existing.ID, true)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Active:   true,
		AddedAt:  time.Now(),
	}
	createErr := r.db.WithContext(ctx).Create(&entry).Error
	if createErr == nil {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error; err != nil {
		return createErr
	}
	return r.SetCartEntryActive(ctx, existing.ID, true)
}

func (r *recipeRepository) IsRecipeInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ? AND active = ?", userID, recipeID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("follower_id = ? AND following_id = ? AND active = ?", followerID, followingID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
