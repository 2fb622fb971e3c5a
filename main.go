package main

import "github.com/gastora/expense-api/cmd"

func main() {
	cmd.Execute()
}
