package main

import "github.com/folio-sh/folio/cmd"

func main() {
	cmd.Execute()
}
