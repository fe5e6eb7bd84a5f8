package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Turn photos into paint-by-numbers mosaics",
	Long: `mosaic reduces a photo to a small palette, lays it out as a grid of
square, circular, triangular or hexagonal tiles sized for a physical canvas,
and renders colored and numbered print sheets.

Every flag can also be set in $HOME/.mosaic.yaml or through MOSAIC_*
environment variables (MOSAIC_TILE_SIZE=3, MOSAIC_SERVER_PORT=9000).

Examples:
  # Letter-size mosaic with the default 24-color palette
  mosaic generate photo.jpg -o out/

  # 12 colors taken from the photo, 6 mm hexagons on a 16x20 in canvas
  mosaic generate photo.jpg --colors 12 --tile-shape hexagon --tile-size 6 \
    --canvas-width 16 --canvas-height 20

  # Show the 8 dominant colors of a photo, darkest first
  mosaic palette photo.jpg --colors 8 --sort

  # Start HTTP server
  mosaic serve --port 8080`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetVersionTemplate(fmt.Sprintf("mosaic {{.Version}} (built %s, commit %s)\n", BuildTime, GitCommit))

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mosaic.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "log progress to stderr")
	rootCmd.PersistentFlags().IntP("colors", "c", 0, "extract this many colors from the photo (default: built-in 24-color palette)")
	rootCmd.PersistentFlags().StringSlice("palette", nil, "explicit palette as hex colors, e.g. --palette '#ff0000,#00ff00'")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("colors", rootCmd.PersistentFlags().Lookup("colors"))
	viper.BindPFlag("palette", rootCmd.PersistentFlags().Lookup("palette"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".mosaic" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mosaic")
	}

	viper.SetEnvPrefix("MOSAIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		// An explicit --config that cannot be read is an error; a missing
		// default file is not.
		cobra.CheckErr(err)
	}
}
