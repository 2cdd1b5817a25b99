package main

import "sprigc/cmd"

func main() {
	cmd.Execute()
}
