package main

import "github.com/rnwolfe/tofi/cmd"

func main() {
	cmd.Execute()
}
