package main

import "github.com/comitanigiacomo/kyool-companion/internal/cli"

func main() {
	cli.Execute()
}
