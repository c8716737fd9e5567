package main

import "github.com/openshelf/libweb/cmd/libweb/command"

func main() {
	command.Execute()
}
