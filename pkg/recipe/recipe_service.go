package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 9999
	MinAmount      = 1
	MaxAmount      = 9999
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string, role string) error
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		SetFavorite(ctx context.Context, recipeID string, userID string, active bool) (domain.RecipeShortResponse, error)
		SetShoppingCart(ctx context.Context, recipeID string, userID string, active bool) (domain.RecipeShortResponse, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

// foldIngredientLines validates every submitted line and merges repeated
// ingredient ids by summing their amounts, keeping first-appearance order.
// The fold happens before anything touches storage.
func foldIngredientLines(lines []domain.IngredientLineRequest) ([]*entities.RecipeIngredient, error) {
	if len(lines) == 0 {
		return nil, domain.ErrNoIngredientLines
	}

	folded := make([]*entities.RecipeIngredient, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))

	for _, line := range lines {
		if line.Amount < MinAmount || line.Amount > MaxAmount {
			return nil, domain.ErrAmountOutOfRange
		}
		ingredientID, err := uuid.Parse(line.ID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}

		if at, ok := index[ingredientID]; ok {
			folded[at].Amount += line.Amount
			continue
		}
		index[ingredientID] = len(folded)
		folded = append(folded, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientID,
			Amount:       line.Amount,
			Position:     len(folded),
		})
	}

	return folded, nil
}

// resolveLines checks that every folded line references a stored ingredient.
func (s *recipeService) resolveLines(ctx context.Context, lines []*entities.RecipeIngredient) error {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.IngredientID.String())
	}

	ingredients, err := s.catalogRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(ingredients) != len(lines) {
		return domain.ErrUnknownIngredient
	}
	return nil
}

func (s *recipeService) resolveTags(ctx context.Context, tagIDs []string) ([]*entities.Tag, error) {
	for _, id := range tagIDs {
		if _, err := uuid.Parse(id); err != nil {
			return nil, domain.ErrParseUUID
		}
	}

	tags, err := s.catalogRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, domain.ErrUnknownTag
	}
	return tags, nil
}

func (s *recipeService) uploadImage(recipeID uuid.UUID, payload string) (string, error) {
	data, contentType, ext, err := utils.DecodeBase64Image(payload)
	if err != nil {
		return "", domain.ErrInvalidImagePayload
	}

	fileName := fmt.Sprintf("%s%s", recipeID.String(), ext)
	objectKey, err := s.s3.UploadObject(fileName, data, contentType, "recipes", storage.AllowImage...)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	if req.CookingTime < MinCookingTime || req.CookingTime > MaxCookingTime {
		return domain.RecipeResponse{}, domain.ErrCookingTimeOutOfRange
	}

	lines, err := foldIngredientLines(req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if err := s.resolveLines(ctx, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        req.Name,
		Description: req.Description,
		CookingTime: req.CookingTime,
	}

	imageURL, err := s.uploadImage(recipe.ID, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	recipe.ImageURL = imageURL

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tags, lines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.CookingTime != nil {
		if *req.CookingTime < MinCookingTime || *req.CookingTime > MaxCookingTime {
			return domain.RecipeResponse{}, domain.ErrCookingTimeOutOfRange
		}
		recipe.CookingTime = *req.CookingTime
	}
	if req.Image != nil {
		imageURL, err := s.uploadImage(recipe.ID, *req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	var tags []*entities.Tag
	replaceTags := req.TagIDs != nil
	if replaceTags {
		if tags, err = s.resolveTags(ctx, req.TagIDs); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	// A supplied ingredient list replaces the prior set wholesale, it is
	// never merged with the existing lines.
	var lines []*entities.RecipeIngredient
	replaceLines := req.Ingredients != nil
	if replaceLines {
		if lines, err = foldIngredientLines(req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
		if err := s.resolveLines(ctx, lines); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, tags, lines, replaceTags, replaceLines); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleStaff {
		return domain.ErrNotRecipeAuthor
	}

	if recipe.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteObject(objectKey)
		}
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) toResponse(ctx context.Context, recipe *entities.Recipe, viewerID string) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		Description: recipe.Description,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt,
		Tags:        make([]domain.TagResponse, 0, len(recipe.Tags)),
		Ingredients: make([]domain.IngredientLineResponse, 0, len(recipe.Ingredients)),
	}

	for _, tag := range recipe.Tags {
		res.Tags = append(res.Tags, catalog.TagToResponse(tag))
	}

	for _, line := range recipe.Ingredients {
		ingredientLine := domain.IngredientLineResponse{
			ID:     line.IngredientID.String(),
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			ingredientLine.Name = line.Ingredient.Name
			ingredientLine.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		res.Ingredients = append(res.Ingredients, ingredientLine)
	}

	if recipe.Author != nil {
		res.Author = domain.RecipeAuthorResponse{
			ID:        recipe.Author.ID.String(),
			Username:  recipe.Author.Username,
			Email:     recipe.Author.Email,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		}
	}

	if viewerID != "" {
		if favorited, err := s.recipeRepository.IsRecipeFavorited(ctx, viewerID, res.ID); err == nil {
			res.IsFavorited = favorited
		}
		if inCart, err := s.recipeRepository.IsRecipeInCart(ctx, viewerID, res.ID); err == nil {
			res.IsInShoppingCart = inCart
		}
		if recipe.Author != nil {
			if following, err := s.recipeRepository.IsFollowing(ctx, viewerID, res.Author.ID); err == nil {
				res.Author.IsSubscribed = following
			}
		}
	}

	return res
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return s.toResponse(ctx, recipe, viewerID), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, s.toResponse(ctx, recipe, viewerID))
	}
	return res, count, nil
}

func (s *recipeService) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetFavoriteRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, s.toResponse(ctx, recipe, userID))
	}
	return res, count, nil
}

func toShortResponse(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

// SetFavorite toggles the soft favorite flag. Activating is idempotent and
// reuses the unique (user, recipe) row; deactivating a relation that was
// never created is a not-found. A user cannot favorite their own recipe.
func (s *recipeService) SetFavorite(ctx context.Context, recipeID string, userID string, active bool) (domain.RecipeShortResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShortResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	if active {
		if recipe.AuthorID == userUUID {
			return domain.RecipeShortResponse{}, domain.ErrOwnRecipeFavorite
		}
		if err := s.recipeRepository.ActivateFavorite(ctx, userUUID, recipe.ID); err != nil {
			return domain.RecipeShortResponse{}, err
		}
		return toShortResponse(recipe), nil
	}

	favorite, err := s.recipeRepository.GetFavorite(ctx, userUUID, recipe.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrFavoriteNotFound
		}
		return domain.RecipeShortResponse{}, err
	}
	if err := s.recipeRepository.SetFavoriteActive(ctx, favorite.ID, false); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	return toShortResponse(recipe), nil
}

// SetShoppingCart toggles cart membership with the same contract as
// SetFavorite, including the own-recipe restriction.
func (s *recipeService) SetShoppingCart(ctx context.Context, recipeID string, userID string, active bool) (domain.RecipeShortResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShortResponse{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	if active {
		if recipe.AuthorID == userUUID {
			return domain.RecipeShortResponse{}, domain.ErrOwnRecipeCart
		}
		if err := s.recipeRepository.ActivateCartEntry(ctx, userUUID, recipe.ID); err != nil {
			return domain.RecipeShortResponse{}, err
		}
		return toShortResponse(recipe), nil
	}

	entry, err := s.recipeRepository.GetCartEntry(ctx, userUUID, recipe.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrCartEntryNotFound
		}
		return domain.RecipeShortResponse{}, err
	}
	if err := s.recipeRepository.SetCartEntryActive(ctx, entry.ID, false); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	return toShortResponse(recipe), nil
}
