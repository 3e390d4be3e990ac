package main

import "github.com/openrace/raceview/cmd"

func main() {
	cmd.Execute()
}
