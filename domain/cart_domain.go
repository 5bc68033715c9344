package domain

var (
	MessageSuccessDownloadCart = "shopping list generated successfully"
	MessageFailedDownloadCart  = "failed to generate shopping list"
)

// ShoppingListItem is one consolidated row of the aggregated cart:
// label is "{ingredient name} ({measurement unit})", amount the sum across
// every active cart recipe containing that ingredient.
type ShoppingListItem struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}
