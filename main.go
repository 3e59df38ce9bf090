package main

import "github.com/LoveFromCodes/todo-list/cmd"

func main() {
	cmd.Execute()
}
