package main

import "github.com/okian/rankview/internal/cli"

func main() {
	cli.Execute()
}
