package main

import "mamba-plan/internal/cli"

func main() {
	cli.Execute()
}
