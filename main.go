package main

import (
	_ "time/tzdata"

	"github.com/nextlevelbuilder/goclaw-envelope/cmd"
)

func main() {
	cmd.Execute()
}
