package main

import "maid/cmd"

func main() {
	cmd.Execute()
}
