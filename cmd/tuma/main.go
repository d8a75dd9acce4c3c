package main

import "github.com/tuma-exchange/client-go/cmd/tuma/cmd"

func main() {
	cmd.Execute()
}
