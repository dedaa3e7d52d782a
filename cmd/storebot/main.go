package main

import (
	"log"

	"github.com/m3rciful/storebot/app/bot"
	appconfig "github.com/m3rciful/storebot/app/config"
	"github.com/m3rciful/storebot/core/cmd"
)

func main() {
	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := appconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(cfg cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			app, err := bot.Bootstrap(cfg.(*appconfig.Config))
			if err != nil {
				return nil, err
			}
			return app, nil
		},
	})
	if err != nil {
		log.Fatalf("storebot: %v", err)
	}
}
