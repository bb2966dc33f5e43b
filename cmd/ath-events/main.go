package main

import "github.com/uguryavuz/ath-events/internal/cli"

func main() {
	cli.Execute()
}
