package main

import (
	"flag"
	"os"

	"ratewatch/internal/app"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration snapshot")
	flag.Parse()

	if err := app.Run(*configPath); err != nil {
		logrus.WithError(err).Error("startup failed")
		os.Exit(1)
	}
}
