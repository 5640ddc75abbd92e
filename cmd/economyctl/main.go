package main

import "github.com/ManuelReschke/ShellEconomy/internal/cli"

func main() {
	cli.Execute()
}
