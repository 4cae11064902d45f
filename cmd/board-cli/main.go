package main

import "github.com/nfrund/signupboard/cmd/board-cli/cmd"

func main() {
	cmd.Execute()
}
