package main

import (
	cmd "github.com/evalgen/evalgen/cmd/evalgen"
	"github.com/evalgen/evalgen/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting evalgen")
	cmd.Execute()
}
