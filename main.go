package main

import (
	"os"

	"poisson/command"
)

func main() {
	os.Exit(command.Execute())
}
