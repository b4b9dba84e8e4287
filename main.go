package main

import "ratemypic/cmd"

func main() {
	cmd.Run()
}
