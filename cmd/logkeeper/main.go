package main

import "github.com/Egor213/LogKeeper/internal/cmd"

func main() {
	cmd.Execute()
}
