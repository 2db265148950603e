package main

import "feedbackdash/cmd"

func main() {
	cmd.Execute()
}
