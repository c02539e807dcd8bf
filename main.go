package main

import "github.com/theirongolddev/seasfin/cmd"

func main() {
	cmd.Execute()
}
