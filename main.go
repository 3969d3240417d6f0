package main

import "github.com/cs278/uk-online-banking-audit/cmd"

func main() {
	cmd.Execute()
}
