package main

import "github.com/rnwolfe/mates/cmd"

func main() {
	cmd.Execute()
}
