package main

import (
	cmd "github.com/aifirst/llmdemos/cmd/llmdemos"
	"github.com/aifirst/llmdemos/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting llmdemos")
	cmd.Execute()
}
