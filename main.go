/*
Copyright © 2025 propbase
*/
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/propbase/ocr-gateway/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
}
