package main

import "github.com/mxcd/templater/internal/cmd"

func main() {
	cmd.Execute()
}
