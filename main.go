package main

import (
	"niftree/cli"
)

func main() {
	cli.Start()
}
