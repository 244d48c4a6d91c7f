package main

import "tspaths/internal/cli"

func main() {
	cli.Execute()
}
