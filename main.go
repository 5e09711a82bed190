package main

import "sched-autogen/cmd"

func main() {
	cmd.Execute()
}
