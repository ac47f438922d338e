package main

import (
	cmd "github.com/inference-gateway/envkeys/cmd"
)

func main() {
	cmd.Execute()
}
