package main

import "github.com/KaramelBytes/custlens-cli/cmd"

func main() {
	cmd.Execute()
}
