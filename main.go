package main

import (
	"rite-api/core/logger"
	"rite-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", err)
	}
}
