package main

import "github.com/ravendevteam/toolbox/cmd"

func main() {
	cmd.Execute()
}
