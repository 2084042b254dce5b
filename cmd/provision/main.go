package main

import "github.com/oshokin/provision/cmd/provision/cmd"

func main() {
	cmd.Execute()
}
