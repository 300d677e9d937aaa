package main

import (
	"os"

	"github.com/robsoriano/wellness-hub-plan/config"
	"github.com/robsoriano/wellness-hub-plan/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
