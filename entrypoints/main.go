package main

import (
	"github.com/Laisky/graphql-context-example/cmd"
)

func main() {
	cmd.Execute()
}
