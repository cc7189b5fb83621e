package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"plantsel/internal/export"
)

var (
	exportOut  string
	exportLogo string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your favourites as a PDF palette",
	Long: `Export the favourites list as a PDF plant palette, one numbered row
per plant with its photo, names and mature size.

Examples:
  plantsel export
  plantsel export -o spring-garden.pdf --logo logo.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		st, sess, err := resolveSession(ctx, cfg, "")
		if err != nil {
			return err
		}
		vm, err := loadedViewModel(ctx, st, sess)
		if err != nil {
			return err
		}
		plants := vm.FavouritePlants()
		if len(plants) == 0 {
			return fmt.Errorf("no favourites to export")
		}

		exporter := export.NewPDFExporter(&http.Client{Timeout: cfg.HTTPTimeout})
		exporter.LogoPath = exportLogo

		file, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := exporter.Export(ctx, plants, file); err != nil {
			return err
		}
		fmt.Printf("Saved %d plants to %s\n", len(plants), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", export.DefaultFilename, "Output PDF path")
	exportCmd.Flags().StringVar(&exportLogo, "logo", "", "Logo image for the title block")
	rootCmd.AddCommand(exportCmd)
}
