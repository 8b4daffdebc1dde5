package main

import "github.com/josexy/hosts-whitelist/cmd"

func main() {
	cmd.Execute()
}
