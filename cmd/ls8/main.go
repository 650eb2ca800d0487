// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"
)

func main() {
	os.Exit(Execute())
}
