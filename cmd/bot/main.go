package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/babyGialo/sigmabot/core/bootstrap"
	"github.com/babyGialo/sigmabot/core/buildinfo"
	corecmd "github.com/babyGialo/sigmabot/core/cmd"
	"github.com/babyGialo/sigmabot/internal/bot"
)

func main() {
	// Optional; real deployments pass env through the process manager.
	_ = godotenv.Load()

	log.Printf("sigmabot %s (%s, built %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date)

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()
			res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return bot.New(cfg, res)
		},
	})
	if err != nil {
		log.Fatalf("sigmabot: %v", err)
	}
}
