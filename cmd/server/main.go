package main

import (
	"fmt"
	"os"

	app2 "github.com/quizmasterhq/quizmaster/internal/app"
)

func main() {
	fmt.Println("app starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/values_example.yaml"
	}

	app, err := app2.NewApp(configPath)
	if err != nil {
		panic(err)
	}

	if err := app.ListenAndServe(); err != nil {
		panic(err)
	}
}
