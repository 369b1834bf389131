package main

import "pawtally/cmd"

func main() {
	cmd.Execute()
}
