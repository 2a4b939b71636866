package main

import "github.com/chriserin/sheetgen/cmd"

func main() {
	cmd.Execute()
}
