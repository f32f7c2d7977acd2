package main

import "github.com/quocvuong92/shelldon/cmd"

func main() {
	cmd.Execute()
}
