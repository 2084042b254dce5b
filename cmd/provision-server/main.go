package main

import "github.com/oshokin/provision/cmd/provision-server/cmd"

func main() {
	cmd.Execute()
}
