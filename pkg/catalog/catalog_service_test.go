package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
)

func withTestDatabase(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&entities.Tag{}, &entities.Ingredient{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	tags := []*entities.Tag{
		{ID: uuid.New(), Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
		{ID: uuid.New(), Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	}
	ingredients := []*entities.Ingredient{
		{ID: uuid.New(), Name: "salt", MeasurementUnit: "g"},
		{ID: uuid.New(), Name: "saffron", MeasurementUnit: "g"},
		{ID: uuid.New(), Name: "milk", MeasurementUnit: "ml"},
	}
	if err := db.Create(&tags).Error; err != nil {
		t.Fatalf("failed to seed tags: %v", err)
	}
	if err := db.Create(&ingredients).Error; err != nil {
		t.Fatalf("failed to seed ingredients: %v", err)
	}
}

func TestGetTagsOrderedBySlug(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()
	seedCatalog(t, db)

	service := NewCatalogService(NewCatalogRepository(db))

	tags, err := service.GetTags(context.Background())
	if err != nil {
		t.Fatalf("failed to get tags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Slug != "breakfast" || tags[1].Slug != "dinner" {
		t.Fatalf("expected slug order breakfast, dinner; got %s, %s", tags[0].Slug, tags[1].Slug)
	}
}

func TestGetTagDetailNotFound(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	service := NewCatalogService(NewCatalogRepository(db))

	if _, err := service.GetTagDetail(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
	if _, err := service.GetTagDetail(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected error to wrap ErrNotFound, got %v", err)
	}
}

func TestGetIngredientsPrefixSearch(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()
	seedCatalog(t, db)

	service := NewCatalogService(NewCatalogRepository(db))

	all, err := service.GetIngredients(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to list ingredients: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(all))
	}

	matched, err := service.GetIngredients(context.Background(), "SA")
	if err != nil {
		t.Fatalf("failed to search ingredients: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches for prefix, got %d", len(matched))
	}
	for _, ingredient := range matched {
		if ingredient.Name != "salt" && ingredient.Name != "saffron" {
			t.Fatalf("unexpected match %q", ingredient.Name)
		}
	}

	none, err := service.GetIngredients(context.Background(), "ilk")
	if err != nil {
		t.Fatalf("failed to search ingredients: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected prefix-only matching, got %d results", len(none))
	}
}

func TestGetIngredientsSearchTreatsWildcardsLiterally(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()
	seedCatalog(t, db)

	cocoa := &entities.Ingredient{ID: uuid.New(), Name: "100% cocoa", MeasurementUnit: "g"}
	if err := db.Create(cocoa).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}

	service := NewCatalogService(NewCatalogRepository(db))

	everything, err := service.GetIngredients(context.Background(), "%")
	if err != nil {
		t.Fatalf("failed to search ingredients: %v", err)
	}
	if len(everything) != 0 {
		t.Fatalf("expected %% to match nothing, got %d results", len(everything))
	}

	underscored, err := service.GetIngredients(context.Background(), "_")
	if err != nil {
		t.Fatalf("failed to search ingredients: %v", err)
	}
	if len(underscored) != 0 {
		t.Fatalf("expected _ to match nothing, got %d results", len(underscored))
	}

	literal, err := service.GetIngredients(context.Background(), "100%")
	if err != nil {
		t.Fatalf("failed to search ingredients: %v", err)
	}
	if len(literal) != 1 || literal[0].Name != "100% cocoa" {
		t.Fatalf("expected the literal-percent name to match, got %+v", literal)
	}
}

func TestGetIngredientDetail(t *testing.T) {
	db, cleanup := withTestDatabase(t)
	defer cleanup()

	salt := &entities.Ingredient{ID: uuid.New(), Name: "salt", MeasurementUnit: "g"}
	if err := db.Create(salt).Error; err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}

	service := NewCatalogService(NewCatalogRepository(db))

	res, err := service.GetIngredientDetail(context.Background(), salt.ID.String())
	if err != nil {
		t.Fatalf("failed to get ingredient: %v", err)
	}
	if res.Name != "salt" || res.MeasurementUnit != "g" {
		t.Fatalf("unexpected payload %+v", res)
	}

	if _, err := service.GetIngredientDetail(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
