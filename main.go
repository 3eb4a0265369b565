package main

import "github.com/stegmannb/usbtree/cmd"

func main() {
	cmd.Execute()
}
