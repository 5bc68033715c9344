package cart

import (
	"Foodgram-Backend/domain"
	"context"
	"fmt"
)

type (
	CartService interface {
		BuildShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, userID string, format string) ([]byte, string, string, error)
	}

	cartService struct {
		cartRepository CartRepository
		renderer       *ShoppingListRenderer
	}
)

func NewCartService(cartRepository CartRepository, renderer *ShoppingListRenderer) CartService {
	return &cartService{
		cartRepository: cartRepository,
		renderer:       renderer,
	}
}

// BuildShoppingList folds every ingredient line of every active cart recipe
// into one consolidated list. Labels are "{name} ({unit})"; since
// (name, unit) is unique in the catalog, equal labels always mean the same
// ingredient. Order is first encounter while scanning entries newest first.
// Pure read, no side effects.
func (s *cartService) BuildShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	entries, err := s.cartRepository.GetActiveEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ShoppingListItem, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		if entry.Recipe == nil {
			continue
		}
		for _, line := range entry.Recipe.Ingredients {
			if line.Ingredient == nil {
				continue
			}
			label := fmt.Sprintf("%s (%s)", line.Ingredient.Name, line.Ingredient.MeasurementUnit)
			if at, ok := index[label]; ok {
				items[at].Amount += line.Amount
				continue
			}
			index[label] = len(items)
			items = append(items, domain.ShoppingListItem{Label: label, Amount: line.Amount})
		}
	}

	return items, nil
}

// DownloadShoppingList renders the aggregated list as a downloadable
// document and returns body, content type and attachment file name.
func (s *cartService) DownloadShoppingList(ctx context.Context, userID string, format string) ([]byte, string, string, error) {
	items, err := s.BuildShoppingList(ctx, userID)
	if err != nil {
		return nil, "", "", err
	}

	if format == "txt" {
		return s.renderer.RenderText(items), "text/plain; charset=utf-8", "ingredients_list.txt", nil
	}

	body, err := s.renderer.RenderPDF(items)
	if err != nil {
		return nil, "", "", err
	}
	return body, "application/pdf", "ingredients_list.pdf", nil
}
