package main

import (
	"todoapi/config"
	"todoapi/di"
	"todoapi/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
