package main

import (
	"os"

	"ucid/internal/ucictl"
)

func main() {
	os.Exit(ucictl.Main())
}
