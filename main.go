package main

import "github.com/flufy3d/jianpu/cmd"

func main() {
	cmd.Execute()
}
