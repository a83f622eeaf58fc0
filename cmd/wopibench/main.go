package main

import "github.com/t-dias/libreoffice-online-repo/cmd/wopibench/cmd"

func main() {
	cmd.Execute()
}
