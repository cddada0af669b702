package main

import "github.com/dukahub/dukaweb/cmd/dukawebd/cmd"

func main() {
	cmd.Execute()
}
