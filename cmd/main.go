package main

import "github.com/emiliopalmerini/churnboard/internal/cli"

func main() {
	cli.Execute()
}
