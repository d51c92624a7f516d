package main

import "github.com/ams627/rjisflow/cmd/rjisflow/cmd"

func main() {
	cmd.Execute()
}
