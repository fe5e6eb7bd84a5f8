package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/mosaic-tools-mcp/internal/imaging"
	"github.com/ironsheep/mosaic-tools-mcp/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette PHOTO",
	Short: "Print the dominant colors of a photo",
	Long: `Print the dominant colors of a photo, one hex color per line.

Colors are found by median cut over the photo's pixels, the same way
generate --colors picks its palette.

Examples:
  mosaic palette photo.jpg
  mosaic palette photo.jpg --colors 8 --sort --region center`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPalette(viper.GetViper(), args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().Bool("sort", false, "order colors from darkest to lightest")
	paletteCmd.Flags().String("region", "", "only sample this part of the photo (top-left, top-right, bottom-left, bottom-right, center)")

	viper.BindPFlag("sort", paletteCmd.Flags().Lookup("sort"))
	viper.BindPFlag("region", paletteCmd.Flags().Lookup("region"))
}

func runPalette(v *viper.Viper, photo string, stdout io.Writer) error {
	count, err := colorsFrom(v)
	if err != nil {
		return err
	}
	if count == 0 {
		count = palette.DefaultSize
	}
	if count > palette.MaxColors {
		return fmt.Errorf("%w: %d colors requested, max %d", palette.ErrPaletteSize, count, palette.MaxColors)
	}

	img, err := imaging.NewImageCache().Load(photo)
	if err != nil {
		return err
	}
	if region := v.GetString("region"); region != "" {
		if img, err = imaging.CropNamed(img, region); err != nil {
			return err
		}
	}

	p := palette.FromImage(img, count)
	if v.GetBool("sort") {
		p = palette.SortByLuminance(p)
	}
	for _, h := range p.Hex() {
		fmt.Fprintln(stdout, h)
	}
	return nil
}
