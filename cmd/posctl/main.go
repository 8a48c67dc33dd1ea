package main

import "github.com/fekuna/omnipos-local/internal/cmd"

func main() {
	cmd.Execute()
}
