package main

import "github.com/LanS10t/geminiMiner/cmd"

func main() {
	cmd.Execute()
}
