package main

import "github.com/LeJamon/goXRPLGateway/internal/cli"

func main() {
	cli.Execute()
}
