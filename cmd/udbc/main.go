package main

import "udbc/cmd"

func main() {
	cmd.Execute()
}
