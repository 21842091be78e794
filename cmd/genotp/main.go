package main

import "filetools/internal/cli"

func main() {
	cli.Main(newRootCommand())
}
