package main

import "journal-backend/internal/cli"

func main() {
	cli.Execute()
}
