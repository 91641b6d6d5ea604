package main

import "github.com/m-gris/atomyst/internal/cli"

func main() {
	cli.Execute()
}
