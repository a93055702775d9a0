package main

import "thoreinstein.com/sessionizer/cmd"

func main() {
	cmd.Execute()
}
