package cart

import (
	"Foodgram-Backend/domain"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

const exportFontFile = "DejaVuSerif.ttf"

// ShoppingListRenderer is a stateless formatter over the aggregator's
// output. The font path is resolved once at construction and reused for
// every rendered document.
type ShoppingListRenderer struct {
	fontPath string
}

func NewShoppingListRenderer(fontDir string) *ShoppingListRenderer {
	renderer := &ShoppingListRenderer{}
	if fontDir != "" {
		fontPath := filepath.Join(fontDir, exportFontFile)
		if _, err := os.Stat(fontPath); err == nil {
			renderer.fontPath = fontPath
		}
	}
	return renderer
}

// RenderText writes one "{label} {amount}" line per entry in the list's
// order. An empty list renders an empty body.
func (r *ShoppingListRenderer) RenderText(items []domain.ShoppingListItem) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		fmt.Fprintf(&buf, "%s %d\n", item.Label, item.Amount)
	}
	return buf.Bytes()
}

// RenderPDF draws the same lines on A4 pages, breaking to a new page
// automatically when a list outgrows one.
func (r *ShoppingListRenderer) RenderPDF(items []domain.ShoppingListItem) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ingredients", true)

	fontName := "Helvetica"
	if r.fontPath != "" {
		fontName = "DejaVuSerif"
		pdf.AddUTF8Font(fontName, "", r.fontPath)
	}

	pdf.AddPage()
	pdf.SetFont(fontName, "", 12)

	for _, item := range items {
		pdf.CellFormat(0, 8, fmt.Sprintf("%s %d", item.Label, item.Amount), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
