package main

import "github.com/dtsx2py/dtsx2py/cmd"

func main() {
	cmd.Execute()
}
