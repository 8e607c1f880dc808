package main

import "github.com/theirongolddev/bliss/cmd"

func main() {
	cmd.Execute()
}
