package main

import "github.com/Zereker/vecns/internal/cli"

func main() {
	cli.Execute()
}
