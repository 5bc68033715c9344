package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/catalog"
)

type fakeS3 struct {
	deleted []string
}

func (f *fakeS3) UploadObject(fileName string, data []byte, contentType string, dir string, allow ...string) (string, error) {
	return fmt.Sprintf("%s/%s", dir, fileName), nil
}

func (f *fakeS3) DeleteObject(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string { return link }

func (f *fakeS3) GetPublicLinkKey(objectKey string) string { return objectKey }

func withTestDatabase(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Follow{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.Favorite{},
		&entities.ShoppingCart{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}
	return ingredient
}

func seedTag(t *testing.T, db *gorm.DB, name string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{
		ID:    uuid.New(),
		Name:  name,
		Color: fmt.Sprintf("#%06X", len(name)*1111),
		Slug:  name,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	return tag
}

func testImagePayload() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a real png"))
}

func newTestService(db *gorm.DB) RecipeService {
	return NewRecipeService(
		NewRecipeRepository(db),
		catalog.NewCatalogRepository(db),
		&fakeS3{},
	)
}

func TestCreateRecipeSumsDuplicateIngredientLines(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	salt := seedIngredient(t, db, "salt", "g")
	pepper := seedIngredient(t, db, "pepper", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	res, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{
			{ID: salt.ID.String(), Amount: 2},
			{ID: salt.ID.String(), Amount: 3},
			{ID: pepper.ID.String(), Amount: 1},
		},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	if len(res.Ingredients) != 2 {
		t.Fatalf("expected 2 folded lines, got %d", len(res.Ingredients))
	}
	if res.Ingredients[0].ID != salt.ID.String() || res.Ingredients[0].Amount != 5 {
		t.Fatalf("expected first line salt with amount 5, got %s amount %d", res.Ingredients[0].Name, res.Ingredients[0].Amount)
	}
	if res.Ingredients[1].ID != pepper.ID.String() || res.Ingredients[1].Amount != 1 {
		t.Fatalf("expected second line pepper with amount 1, got %s amount %d", res.Ingredients[1].Name, res.Ingredients[1].Amount)
	}

	var lineCount int64
	if err := db.Model(&entities.RecipeIngredient{}).Count(&lineCount).Error; err != nil {
		t.Fatalf("failed to count stored lines: %v", err)
	}
	if lineCount != 2 {
		t.Fatalf("expected 2 stored lines, got %d", lineCount)
	}
}

func TestCreateRecipeRejectsBadInput(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	salt := seedIngredient(t, db, "salt", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	base := domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 2}},
	}

	noLines := base
	noLines.Ingredients = nil
	if _, err := service.CreateRecipe(context.Background(), noLines, author.ID.String()); !errors.Is(err, domain.ErrNoIngredientLines) {
		t.Fatalf("expected ErrNoIngredientLines, got %v", err)
	}

	badAmount := base
	badAmount.Ingredients = []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 10000}}
	if _, err := service.CreateRecipe(context.Background(), badAmount, author.ID.String()); !errors.Is(err, domain.ErrAmountOutOfRange) {
		t.Fatalf("expected ErrAmountOutOfRange, got %v", err)
	}

	badTime := base
	badTime.CookingTime = 0
	if _, err := service.CreateRecipe(context.Background(), badTime, author.ID.String()); !errors.Is(err, domain.ErrCookingTimeOutOfRange) {
		t.Fatalf("expected ErrCookingTimeOutOfRange, got %v", err)
	}

	unknownIngredient := base
	unknownIngredient.Ingredients = []domain.IngredientLineRequest{{ID: uuid.NewString(), Amount: 2}}
	if _, err := service.CreateRecipe(context.Background(), unknownIngredient, author.ID.String()); !errors.Is(err, domain.ErrUnknownIngredient) {
		t.Fatalf("expected ErrUnknownIngredient, got %v", err)
	}

	unknownTag := base
	unknownTag.TagIDs = []string{uuid.NewString()}
	if _, err := service.CreateRecipe(context.Background(), unknownTag, author.ID.String()); !errors.Is(err, domain.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}

	if _, err := service.CreateRecipe(context.Background(), base, author.ID.String()); err != nil {
		t.Fatalf("expected valid request to pass, got %v", err)
	}
}

func TestUpdateRecipeReplacesIngredientLinesWholesale(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	salt := seedIngredient(t, db, "salt", "g")
	pepper := seedIngredient(t, db, "pepper", "g")
	sugar := seedIngredient(t, db, "sugar", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	created, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{
			{ID: salt.ID.String(), Amount: 2},
			{ID: pepper.ID.String(), Amount: 1},
		},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	updated, err := service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Ingredients: []domain.IngredientLineRequest{{ID: sugar.ID.String(), Amount: 7}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to update recipe: %v", err)
	}

	if len(updated.Ingredients) != 1 {
		t.Fatalf("expected 1 line after replacement, got %d", len(updated.Ingredients))
	}
	if updated.Ingredients[0].ID != sugar.ID.String() || updated.Ingredients[0].Amount != 7 {
		t.Fatalf("expected sugar line with amount 7, got %s amount %d", updated.Ingredients[0].Name, updated.Ingredients[0].Amount)
	}

	var lineCount int64
	if err := db.Model(&entities.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&lineCount).Error; err != nil {
		t.Fatalf("failed to count stored lines: %v", err)
	}
	if lineCount != 1 {
		t.Fatalf("expected old lines to be gone, got %d rows", lineCount)
	}
}

func TestUpdateRecipeKeepsUntouchedFields(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	salt := seedIngredient(t, db, "salt", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	created, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 2}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	newName := "Better soup"
	updated, err := service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Name: &newName,
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to update recipe: %v", err)
	}

	if updated.Name != newName {
		t.Fatalf("expected renamed recipe, got %q", updated.Name)
	}
	if updated.CookingTime != 30 {
		t.Fatalf("expected cooking time to survive, got %d", updated.CookingTime)
	}
	if len(updated.Ingredients) != 1 || len(updated.Tags) != 1 {
		t.Fatalf("expected lines and tags to survive, got %d lines %d tags", len(updated.Ingredients), len(updated.Tags))
	}
}

func TestUpdateRecipeRequiresAuthor(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	salt := seedIngredient(t, db, "salt", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	created, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 2}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	newName := "Hijacked"
	if _, err := service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{Name: &newName}, other.ID.String()); !errors.Is(err, domain.ErrNotRecipeAuthor) {
		t.Fatalf("expected ErrNotRecipeAuthor, got %v", err)
	}
	if err := service.DeleteRecipe(context.Background(), created.ID, other.ID.String(), domain.RoleUser); !errors.Is(err, domain.ErrNotRecipeAuthor) {
		t.Fatalf("expected ErrNotRecipeAuthor on delete, got %v", err)
	}

	// staff may delete any recipe
	if err := service.DeleteRecipe(context.Background(), created.ID, other.ID.String(), domain.RoleStaff); err != nil {
		t.Fatalf("expected staff delete to pass, got %v", err)
	}
	if _, err := service.GetRecipeDetail(context.Background(), created.ID, ""); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected recipe to be gone, got %v", err)
	}
}

func TestFavoriteToggleReusesRow(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	salt := seedIngredient(t, db, "salt", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	created, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 2}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := service.SetFavorite(context.Background(), created.ID, viewer.ID.String(), true); err != nil {
			t.Fatalf("failed to favorite: %v", err)
		}
		if _, err := service.SetFavorite(context.Background(), created.ID, viewer.ID.String(), false); err != nil {
			t.Fatalf("failed to unfavorite: %v", err)
		}
	}
	if _, err := service.SetFavorite(context.Background(), created.ID, viewer.ID.String(), true); err != nil {
		t.Fatalf("failed to re-favorite: %v", err)
	}

	var rows []entities.Favorite
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("failed to read favorites: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected toggles to reuse one row, got %d", len(rows))
	}
	if !rows[0].Active {
		t.Fatal("expected row to end active")
	}

	detail, err := service.GetRecipeDetail(context.Background(), created.ID, viewer.ID.String())
	if err != nil {
		t.Fatalf("failed to get detail: %v", err)
	}
	if !detail.IsFavorited {
		t.Fatal("expected is_favorited for viewer")
	}
}

func TestFavoriteRestrictions(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	viewer := seedUser(t, db, "viewer")
	salt := seedIngredient(t, db, "salt", "g")
	tag := seedTag(t, db, "dinner")

	service := newTestService(db)

	created, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Name:        "Soup",
		Description: "A soup",
		CookingTime: 30,
		Image:       testImagePayload(),
		TagIDs:      []string{tag.ID.String()},
		Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 2}},
	}, author.ID.String())
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}

	if _, err := service.SetFavorite(context.Background(), created.ID, author.ID.String(), true); !errors.Is(err, domain.ErrOwnRecipeFavorite) {
		t.Fatalf("expected ErrOwnRecipeFavorite, got %v", err)
	}
	if _, err := service.SetShoppingCart(context.Background(), created.ID, author.ID.String(), true); !errors.Is(err, domain.ErrOwnRecipeCart) {
		t.Fatalf("expected ErrOwnRecipeCart, got %v", err)
	}

	if _, err := service.SetFavorite(context.Background(), created.ID, viewer.ID.String(), false); !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
	if _, err := service.SetShoppingCart(context.Background(), created.ID, viewer.ID.String(), false); !errors.Is(err, domain.ErrCartEntryNotFound) {
		t.Fatalf("expected ErrCartEntryNotFound, got %v", err)
	}

	if _, err := service.SetFavorite(context.Background(), uuid.NewString(), viewer.ID.String(), true); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestGetRecipesFilters(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")
	viewer := seedUser(t, db, "viewer")
	salt := seedIngredient(t, db, "salt", "g")
	dinner := seedTag(t, db, "dinner")
	lunch := seedTag(t, db, "lunch")

	service := newTestService(db)

	mk := func(name, authorID string, tagIDs []string) domain.RecipeResponse {
		res, err := service.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
			Name:        name,
			Description: name,
			CookingTime: 10,
			Image:       testImagePayload(),
			TagIDs:      tagIDs,
			Ingredients: []domain.IngredientLineRequest{{ID: salt.ID.String(), Amount: 1}},
		}, authorID)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		return res
	}

	first := mk("first", author.ID.String(), []string{dinner.ID.String()})
	mk("second", author.ID.String(), []string{lunch.ID.String()})
	mk("third", other.ID.String(), []string{dinner.ID.String(), lunch.ID.String()})

	byTag, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{TagSlugs: []string{"dinner"}}, "", 1, 10)
	if err != nil {
		t.Fatalf("failed to filter by tag: %v", err)
	}
	if count != 2 || len(byTag) != 2 {
		t.Fatalf("expected 2 dinner recipes, got count %d len %d", count, len(byTag))
	}

	byAuthor, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{AuthorID: author.ID.String()}, "", 1, 10)
	if err != nil {
		t.Fatalf("failed to filter by author: %v", err)
	}
	if count != 2 || len(byAuthor) != 2 {
		t.Fatalf("expected 2 recipes by author, got count %d len %d", count, len(byAuthor))
	}

	if _, err := service.SetFavorite(context.Background(), first.ID, viewer.ID.String(), true); err != nil {
		t.Fatalf("failed to favorite: %v", err)
	}

	// anonymous viewers never bind the favorited filter
	all, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{IsFavorited: true}, "", 1, 10)
	if err != nil {
		t.Fatalf("failed to list recipes: %v", err)
	}
	if count != 3 || len(all) != 3 {
		t.Fatalf("expected filter to be ignored for anonymous viewer, got count %d len %d", count, len(all))
	}

	favorited, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{IsFavorited: true}, viewer.ID.String(), 1, 10)
	if err != nil {
		t.Fatalf("failed to filter favorites: %v", err)
	}
	if count != 1 || len(favorited) != 1 || favorited[0].ID != first.ID {
		t.Fatalf("expected only the favorited recipe, got count %d", count)
	}
}
