package main

import (
	"fmt"
	"os"

	"watchstore/cli"
	_ "watchstore/docs"
)

// @title Watch Store API
// @version 1.0
// @description REST API for the watch store: products, cart, orders, auth
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
