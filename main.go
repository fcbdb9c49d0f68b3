package main

import "dealtown/cmd"

func main() {
	cmd.Execute()
}
