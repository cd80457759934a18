package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"library-backend/pkg/logger"
)

func main() {
	// Missing .env is fine, real deployments set the environment.
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	logger.Init(env)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(); err != nil {
		logger.Error("server exited", err)
		os.Exit(1)
	}
}
