package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"plantsel/internal/models"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := pngBytes(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/good.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/corrupt.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// pageCount counts page objects in the produced document. Object
// dictionaries are written uncompressed, so the marker is countable even
// when content streams are deflated.
func pageCount(data []byte) int {
	return bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
}

func testExporter(server *httptest.Server) *PDFExporter {
	e := NewPDFExporter(server.Client())
	e.now = func() time.Time {
		return time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	}
	return e
}

func TestExportSinglePage(t *testing.T) {
	server := imageServer(t)
	e := testExporter(server)

	plants := []models.Plant{
		{CommonName: "Correa", BotanicalName: "Correa alba", Height: "1m", Width: "1m", ImageURL: server.URL + "/good.png"},
		{CommonName: "Grevillea", BotanicalName: "Grevillea lanigera", Height: "0.5m", Width: "1.5m"},
	}

	var buf bytes.Buffer
	if err := e.Export(context.Background(), plants, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", buf.Bytes()[:8])
	}
	if got := pageCount(buf.Bytes()); got != 1 {
		t.Fatalf("expected 1 page, got %d", got)
	}
}

func TestExportPaginates(t *testing.T) {
	server := imageServer(t)
	e := testExporter(server)

	// Six rows fit in the first page's content area; the rest overflow.
	var plants []models.Plant
	for i := 0; i < 8; i++ {
		plants = append(plants, models.Plant{
			CommonName:    fmt.Sprintf("Plant %d", i+1),
			BotanicalName: "Testus plantus",
			Height:        "1m",
			Width:         "1m",
		})
	}

	var buf bytes.Buffer
	if err := e.Export(context.Background(), plants, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := pageCount(buf.Bytes()); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}

func TestExportSurvivesImageFailures(t *testing.T) {
	server := imageServer(t)
	e := testExporter(server)

	plants := []models.Plant{
		{CommonName: "Good", BotanicalName: "B", ImageURL: server.URL + "/good.png"},
		{CommonName: "Missing", BotanicalName: "B", ImageURL: server.URL + "/missing.png"},
		{CommonName: "Corrupt", BotanicalName: "B", ImageURL: server.URL + "/corrupt.jpg"},
		{CommonName: "None", BotanicalName: "B"},
	}

	var buf bytes.Buffer
	if err := e.Export(context.Background(), plants, &buf); err != nil {
		t.Fatalf("image failures must degrade to placeholders, got %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected document output")
	}
}

func TestFetchAllKeepsSlotOrder(t *testing.T) {
	server := imageServer(t)
	fetcher := newImageFetcher(server.Client())

	urls := []string{
		server.URL + "/good.png",
		server.URL + "/missing.png",
		"",
		server.URL + "/corrupt.jpg",
	}
	images := fetcher.fetchAll(context.Background(), urls)
	if len(images) != len(urls) {
		t.Fatalf("expected one slot per url, got %d", len(images))
	}
	if images[0] == nil || images[0].kind != "PNG" {
		t.Fatalf("expected decoded png in slot 0, got %+v", images[0])
	}
	for i := 1; i < len(images); i++ {
		if images[i] != nil {
			t.Fatalf("expected nil slot %d for failed fetch, got %+v", i, images[i])
		}
	}
}

func TestCheckImageRejectsUnknownFormats(t *testing.T) {
	if got := checkImage([]byte("not an image")); got != nil {
		t.Fatalf("expected nil for undecodable bytes, got %+v", got)
	}
	if got := checkImage(pngBytes(t)); got == nil || got.kind != "PNG" {
		t.Fatalf("expected PNG kind, got %+v", got)
	}
}
