package export

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"plantsel/internal/models"
)

// FavouritesText renders the favourites list as shareable plain text,
// one line per plant.
func FavouritesText(plants []models.Plant) string {
	lines := make([]string, 0, len(plants))
	for _, plant := range plants {
		lines = append(lines, fmt.Sprintf("%s (%s) - %s H x %s W",
			plant.CommonName, plant.BotanicalName, plant.Height, plant.Width))
	}
	return strings.Join(lines, "\n")
}

// CopyText places text on the system clipboard.
func CopyText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
