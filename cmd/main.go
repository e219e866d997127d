package main

import "github.com/ArtemSukhotko/ai-astro-tarot/internal/cli"

func main() {
	cli.Execute()
}
