package main

import "github.com/sidhant-sriv/rentease-api/cmd"

func main() {
	cmd.Execute()
}
