package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/atrium/pkg/config"
	"github.com/chazu/atrium/pkg/logging"
	"github.com/chazu/atrium/pkg/store"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load("atrium.yaml")
	if err != nil {
		logging.NewDefault().Error("config", logging.Error(err))
		os.Exit(1)
	}

	log := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	sessions, err := store.Open(cfg.SessionDB)
	if err != nil {
		log.Error("session store", logging.Error(err))
		os.Exit(1)
	}
	defer sessions.Close()

	app := NewApp(cfg, log, sessions)

	err = wails.Run(&options.App{
		Title:  "Atrium",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Error("wails", logging.Error(err))
		os.Exit(1)
	}
}
