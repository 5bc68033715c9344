package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessFavorite        = "favorite updated successfully"
	MessageSuccessShoppingCart    = "shopping cart updated successfully"
	MessageSuccessGetFavorites    = "success get favorite recipes"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to update favorite"
	MessageFailedShoppingCart    = "failed to update shopping cart"
	MessageFailedGetFavorites    = "failed to get favorite recipes"

	ErrRecipeNotFound        = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrNotRecipeAuthor       = fmt.Errorf("%w: only the author can modify this recipe", ErrForbidden)
	ErrCookingTimeOutOfRange = fmt.Errorf("%w: cooking time must be between 1 and 9999", ErrValidation)
	ErrAmountOutOfRange      = fmt.Errorf("%w: ingredient amount must be between 1 and 9999", ErrValidation)
	ErrNoIngredientLines     = fmt.Errorf("%w: recipe needs at least one ingredient", ErrValidation)
	ErrUnknownIngredient     = fmt.Errorf("%w: referenced ingredient does not exist", ErrValidation)
	ErrUnknownTag            = fmt.Errorf("%w: referenced tag does not exist", ErrValidation)
	ErrOwnRecipeFavorite     = fmt.Errorf("%w: cannot favorite your own recipe", ErrValidation)
	ErrOwnRecipeCart         = fmt.Errorf("%w: cannot add your own recipe to the cart", ErrValidation)
	ErrFavoriteNotFound      = fmt.Errorf("%w: recipe is not in favorites", ErrNotFound)
	ErrCartEntryNotFound     = fmt.Errorf("%w: recipe is not in the shopping cart", ErrNotFound)
	ErrInvalidImagePayload   = fmt.Errorf("%w: image must be base64 encoded", ErrValidation)
)

type (
	IngredientLineRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=9999"`
	}

	CreateRecipeRequest struct {
		Name        string                  `json:"name" validate:"required,max=200"`
		Description string                  `json:"text" validate:"required,max=999"`
		CookingTime int                     `json:"cooking_time" validate:"required,min=1,max=9999"`
		Image       string                  `json:"image" validate:"required"`
		TagIDs      []string                `json:"tags" validate:"required,min=1,dive,uuid"`
		Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	// UpdateRecipeRequest carries partial fields: nil means keep the prior
	// value, a supplied ingredient or tag list replaces the old set wholesale.
	UpdateRecipeRequest struct {
		Name        *string                 `json:"name" validate:"omitempty,max=200"`
		Description *string                 `json:"text" validate:"omitempty,max=999"`
		CookingTime *int                    `json:"cooking_time" validate:"omitempty,min=1,max=9999"`
		Image       *string                 `json:"image"`
		TagIDs      []string                `json:"tags" validate:"omitempty,dive,uuid"`
		Ingredients []IngredientLineRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	RecipeFilter struct {
		TagSlugs         []string
		AuthorID         string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	IngredientLineResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeAuthorResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	RecipeResponse struct {
		ID               string                   `json:"id"`
		Tags             []TagResponse            `json:"tags"`
		Author           RecipeAuthorResponse     `json:"author"`
		Ingredients      []IngredientLineResponse `json:"ingredients"`
		IsFavorited      bool                     `json:"is_favorited"`
		IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
		Name             string                   `json:"name"`
		ImageURL         string                   `json:"image"`
		Description      string                   `json:"text"`
		CookingTime      int                      `json:"cooking_time"`
		CreatedAt        time.Time                `json:"created_at"`
	}

	// RecipeShortResponse is the compact shape returned by the favorite and
	// shopping-cart toggles and embedded in subscription payloads.
	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}
)
