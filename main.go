package main

import "github.com/ByLCY/lively/cli"

func main() {
	cli.Main()
}
