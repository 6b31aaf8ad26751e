package main

import "github.com/edgedesk/edgedesk/internal/cli"

func main() {
	cli.Run()
}
