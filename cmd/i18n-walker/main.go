package main

import "i18n-walker/internal/cli"

func main() {
	cli.Execute()
}
