package main

import "github.com/ivtomov/task-manager/internal/cli"

func main() {
	cli.Execute()
}
