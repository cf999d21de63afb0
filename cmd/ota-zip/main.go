package main

import "github.com/oshokin/ota-zip/cmd/ota-zip/cmd"

func main() {
	cmd.Execute()
}
