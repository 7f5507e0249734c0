package main

import "github.com/dstrand/wander/cmd"

func main() {
	cmd.Execute()
}
