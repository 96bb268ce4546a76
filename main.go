package main

import "github.com/Changwoo-dev/backend-test-v1/cmd"

func main() {
	cmd.Execute()
}
