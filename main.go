package main

import "github.com/salwon/segyio/cmd"

func main() {
	cmd.Execute()
}
