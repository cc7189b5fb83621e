package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"plantsel/internal/export"
)

var copyStdout bool

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy your favourites list as text",
	Long: `Copy the favourites list to the clipboard, one line per plant:

  Common Name (Botanical Name) - 2m H x 1m W

Use --stdout to print instead of copying.`,
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
			return fmt.Errorf("no favourites to copy")
		}

		text := export.FavouritesText(plants)
		if copyStdout {
			fmt.Println(text)
			return nil
		}
		if err := export.CopyText(text); err != nil {
			return err
		}
		fmt.Printf("Copied %d plants\n", len(plants))
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyStdout, "stdout", false, "Print to stdout instead of the clipboard")
	rootCmd.AddCommand(copyCmd)
}
