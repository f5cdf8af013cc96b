package main

import (
	"embed"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/config"
)

//go:embed all:frontend/public
var assets embed.FS

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		return runGUI(cfg)
	},
}

func init() {
	RootCmd.AddCommand(guiCmd)
}

func runGUI(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}

	err = wails.Run(&options.App{
		Title:  "DWSPapyrus",
		Width:  960,
		Height: 720,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 46, G: 46, B: 46, A: 255}, // #2e2e2e
		OnStartup:        app.Startup,
		Bind: []interface{}{
			app,
		},
	})
	return errors.Wrap(err, "error running desktop window")
}
