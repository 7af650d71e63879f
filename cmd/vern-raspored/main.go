package main

import "github.com/iprlic/vern-raspored/internal/cli"

func main() {
	cli.Execute()
}
