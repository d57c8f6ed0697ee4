package main

import "github.com/gaurav-prasanna/mdsafe/cmd"

func main() {
	cmd.Execute()
}
