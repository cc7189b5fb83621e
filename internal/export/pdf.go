// Package export turns the current favourites snapshot into shareable
// artifacts: a paginated PDF and a plain-text list.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"plantsel/internal/models"
)

// DefaultFilename is the deterministic name for the exported document.
const DefaultFilename = "plant-palette.pdf"

// Page layout in millimetres on A4 portrait.
const (
	rowImageSize  = 30
	rowSpacing    = 5
	rowHeight     = rowImageSize + rowSpacing
	imageX        = 15
	textX         = imageX + rowImageSize + 8
	firstRowY     = 55
	continueRowY  = 20
	contentBottom = 280
	footerY       = 290
)

type PDFExporter struct {
	// LogoPath points at an optional PNG or JPEG header logo; missing
	// or unreadable files are skipped, never fatal.
	LogoPath string
	// Footer is the caption drawn exactly once, on the final page.
	Footer string

	client *http.Client
	now    func() time.Time
}

func NewPDFExporter(client *http.Client) *PDFExporter {
	return &PDFExporter{
		Footer: "Kathleen Murphy Landscape Design",
		client: client,
		now:    time.Now,
	}
}

// Export lays out the favourites snapshot into w. Every thumbnail fetch
// resolves before the first page is drawn; individual image failures
// degrade to a placeholder block.
func (e *PDFExporter) Export(ctx context.Context, plants []models.Plant, w io.Writer) error {
	urls := make([]string, len(plants))
	for i, plant := range plants {
		urls[i] = plant.ImageURL
	}
	images := newImageFetcher(e.client).fetchAll(ctx, urls)

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	pageWidth, _ := doc.GetPageSize()

	e.drawTitleBlock(doc, pageWidth)

	y := float64(firstRowY)
	for i, plant := range plants {
		if y+rowHeight > contentBottom {
			doc.AddPage()
			y = continueRowY
		}
		e.drawRow(doc, plant, i+1, images[i], y)
		y += rowHeight
	}

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(150, 150, 150)
	doc.Text(pageWidth/2-doc.GetStringWidth(e.Footer)/2, footerY, e.Footer)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (e *PDFExporter) drawTitleBlock(doc *fpdf.Fpdf, pageWidth float64) {
	if logo := e.loadLogo(); logo != nil {
		const logoWidth, logoHeight = 50.0, 15.0
		x := (pageWidth - logoWidth) / 2
		doc.SetFillColor(253, 251, 247)
		doc.Rect(x, 10, logoWidth, logoHeight, "F")
		name := "header-logo"
		doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: logo.kind}, bytes.NewReader(logo.data))
		doc.ImageOptions(name, x, 10, logoWidth, logoHeight, false, fpdf.ImageOptions{ImageType: logo.kind}, 0, "")
	}

	title := "Plant Palette"
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(31, 41, 55)
	doc.Text(pageWidth/2-doc.GetStringWidth(title)/2, 38, title)

	generated := "Generated " + e.now().Format("2 January 2006")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(132, 169, 140)
	doc.Text(pageWidth/2-doc.GetStringWidth(generated)/2, 45, generated)
}

func (e *PDFExporter) drawRow(doc *fpdf.Fpdf, plant models.Plant, number int, img *fetchedImage, y float64) {
	if img != nil {
		name := fmt.Sprintf("plant-%d", number)
		doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.kind}, bytes.NewReader(img.data))
		doc.ImageOptions(name, imageX, y, rowImageSize, rowImageSize, false, fpdf.ImageOptions{ImageType: img.kind}, 0, "")
	} else {
		doc.SetFillColor(240, 240, 240)
		doc.Rect(imageX, y, rowImageSize, rowImageSize, "F")
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(31, 41, 55)
	doc.Text(textX, y+8, fmt.Sprintf("%d. %s", number, plant.CommonName))

	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.Text(textX, y+14, plant.BotanicalName)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(132, 169, 140)
	doc.Text(textX, y+20, fmt.Sprintf("%s H x %s W", plant.Height, plant.Width))

	doc.SetTextColor(180, 100, 80)
	line := plant.Category
	if plant.SubCategory != "" {
		line += " - " + plant.SubCategory
	}
	doc.Text(textX, y+26, line)
}

func (e *PDFExporter) loadLogo() *fetchedImage {
	if e.LogoPath == "" {
		return nil
	}
	data, err := os.ReadFile(e.LogoPath)
	if err != nil {
		return nil
	}
	return checkImage(data)
}
