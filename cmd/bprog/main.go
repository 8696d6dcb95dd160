package main

import "github.com/funvibe/bprog/pkg/cli"

func main() {
	cli.Run()
}
