package main

import "github.com/mvp-joe/gencppdoc/internal/cli"

func main() {
	cli.Execute()
}
