package main

import (
	"os"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
