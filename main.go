package main

import (
	"github.com/chrisuehlinger/tingle/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
