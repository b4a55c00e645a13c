package main

import (
	"github.com/ValentinKolb/fsbox/cmd"
)

func main() {
	cmd.Execute()
}
