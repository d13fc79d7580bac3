package main

import "github.com/pfrederiksen/race-calendar/internal/cli"

func main() {
	cli.Execute()
}
