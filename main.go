package main

import "github.com/wheelhouse/partshop/app/cmd"

func main() {
	cmd.Execute()
}
