package main

import "github.com/riskboard/riskboard/cli/internal/cmd"

func main() {
	cmd.Execute()
}
