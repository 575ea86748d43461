// Package document renders printable PDFs for menus and purchase orders
// using go-pdf/fpdf. Rendering is pure: it returns bytes and never touches
// the filesystem.
package document

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
)

// Menu is the printable content of a daily menu.
type Menu struct {
	Date     string
	Sections map[string][]string // section name → dish names
	Toppings map[string]string   // topping → quantity
}

// PurchaseOrder is the printable content of an ingredient order.
type PurchaseOrder struct {
	Date        string
	Ingredients map[string]string // ingredient → quantity
}

// Renderer builds A4 documents headed with the restaurant's name.
type Renderer struct {
	title    string
	compress bool
}

func NewRenderer(title string) *Renderer {
	return &Renderer{title: title, compress: true}
}

func (r *Renderer) newPage(subtitle, date string) (*fpdf.Fpdf, func(string) string, float64) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(r.title+" - "+subtitle, true)
	pdf.AddPage()

	// Core fonts are cp1252; accented dish names go through the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, tr(r.title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(contentW, 7, tr(subtitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(contentW, 6, tr(date), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(4)

	return pdf, tr, contentW
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document: render: %w", err)
	}
	return buf.Bytes(), nil
}

// Menu renders the menu with sections in name order and dishes in the
// order they were chosen.
func (r *Renderer) Menu(m Menu) ([]byte, error) {
	pdf, tr, contentW := r.newPage("Menú del día", m.Date)

	for _, section := range sortedKeys(m.Sections) {
		dishes := m.Sections[section]
		if len(dishes) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(contentW, 8, tr(section), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, dish := range dishes {
			pdf.CellFormat(contentW, 6, tr("  "+dish), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(m.Toppings) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(contentW, 8, tr("Acompañamientos"), "B", 1, "L", false, 0, "")
		quantityTable(pdf, tr, contentW, m.Toppings)
	}

	return output(pdf)
}

// PurchaseOrder renders the ingredient table in ingredient name order.
func (r *Renderer) PurchaseOrder(o PurchaseOrder) ([]byte, error) {
	pdf, tr, contentW := r.newPage("Orden de compra", o.Date)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.7, 7, tr("Ingrediente"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 7, tr("Cantidad"), "B", 1, "R", false, 0, "")
	quantityTable(pdf, tr, contentW, o.Ingredients)

	return output(pdf)
}

func quantityTable(pdf *fpdf.Fpdf, tr func(string) string, contentW float64, rows map[string]string) {
	pdf.SetFont("Helvetica", "", 11)
	for _, name := range sortedKeys(rows) {
		pdf.CellFormat(contentW*0.7, 6, tr(name), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, tr(rows[name]), "", 1, "R", false, 0, "")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
