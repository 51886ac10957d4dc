package main

import (
	"os"

	"github.com/eink-vnc/vncprefs/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
