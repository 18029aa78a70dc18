package main

import (
	"github.com/jsphweid/musicxml/cmd"
)

func main() {
	cmd.Execute()
}
