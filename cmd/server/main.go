package main

import (
	"github.com/sirupsen/logrus"

	"github.com/nrandle/image-downloader/config"
	"github.com/nrandle/image-downloader/internal/appServer"
)

func main() {
	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config: %v", err)
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config: %v", err)
	}

	appServer.NewServer(cfg)
}
