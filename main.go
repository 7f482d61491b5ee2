package main

import (
	"newswire/cmd/handlers"
	"newswire/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
