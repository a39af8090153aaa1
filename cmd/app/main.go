package main

import (
	"fleetrent/config"
	"fleetrent/di"
	"fleetrent/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
