package main

import "asset-bridge/cmd"

func main() {
	cmd.Execute()
}
