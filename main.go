package main

import "github.com/Rorical/RoriShell/cmd"

func main() {
	cmd.Execute()
}
