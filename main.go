package main

import "github.com/eryajf/servicebot/cmd"

func main() {
	cmd.Execute()
}
