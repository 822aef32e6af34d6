package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/amble-health/amble/internal/grocery"
	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/vitals"
	"github.com/jung-kurt/gofpdf"
)

// ShoppingSource поставляет список покупок текущей сессии.
type ShoppingSource interface {
	ShoppingList(ctx context.Context, userID string) []storage.Ingredient
}

// TotalsSource поставляет дневные итоги по питанию.
type TotalsSource interface {
	Totals(userID, date string) vitals.Totals
}

// Generator собирает PDF/CSV выгрузку списка покупок.
type Generator struct {
	shopping ShoppingSource
	totals   TotalsSource
}

// NewGenerator creates a new report generator
func NewGenerator(shopping ShoppingSource, totals TotalsSource) *Generator {
	return &Generator{shopping: shopping, totals: totals}
}

// GenerateReport produces the export bytes for the given request
func (g *Generator) GenerateReport(ctx context.Context, userID string, req CreateReportRequest) ([]byte, error) {
	items := g.shopping.ShoppingList(ctx, userID)
	groups := grocery.GroupByCategory(items)
	totals := g.totals.Totals(userID, req.ForDate)

	switch req.Format {
	case FormatPDF:
		return g.generatePDF(groups, totals, req.ForDate)
	case FormatCSV:
		return g.generateCSV(groups)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}

// generatePDF renders the grouped shopping list with a nutrition summary
func (g *Generator) generatePDF(groups []grocery.CategoryGroup, totals vitals.Totals, forDate string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Shopping List")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("For %s", forDate))
	pdf.Ln(12)
	pdf.SetTextColor(0, 0, 0)

	// Nutrition summary for the day
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Daily Totals")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Calories: %d kcal", totals.TotalCalories))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Protein: %d g", totals.TotalProtein))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Fat: %d g / Carbs: %d g", totals.TotalFat, totals.TotalCarbs))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Meals accepted: %d", totals.MealCount))
	pdf.Ln(12)

	// Grouped items
	if len(groups) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 6, "No items yet. Accept a meal to fill the list.")
		pdf.Ln(6)
	}

	for _, group := range groups {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 8, group.Category, "", 1, "L", true, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "", 10)
		for _, item := range group.Items {
			line := item.Name
			if item.Quantity != "" {
				line = fmt.Sprintf("%s - %s", item.Name, item.Quantity)
			}
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// generateCSV renders the grouped shopping list as CSV
func (g *Generator) generateCSV(groups []grocery.CategoryGroup) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"category", "name", "quantity", "position"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	pos := 0
	for _, group := range groups {
		for _, item := range group.Items {
			pos++
			row := []string{
				group.Category,
				item.Name,
				item.Quantity,
				strconv.Itoa(pos),
			}
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
