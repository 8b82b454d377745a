package main

import "github.com/ruslanminnebaev21-del/beri-prosto-service/cmd"

func main() {
	cmd.Execute()
}
