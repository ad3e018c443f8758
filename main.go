package main

import "github.com/mabhi256/havbench/cmd"

func main() {
	cmd.Execute()
}
