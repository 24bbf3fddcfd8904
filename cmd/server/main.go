package main

import (
	"github.com/OFFIS-RIT/plotline/internal/server"
	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
	"github.com/OFFIS-RIT/plotline/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
		JSON:  util.GetEnvBool("LOG_JSON", false),
	})
	logger.Init(consoleLogger)

	server.Init()
}
