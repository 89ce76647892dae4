package main

import "github.com/calleviva/trucksim/cmd"

func main() {
	cmd.Execute()
}
