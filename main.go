package main

import "github.com/danindra/workforce-scheduling/cmd"

func main() {
	cmd.Execute()
}
