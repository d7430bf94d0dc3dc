package main

import "github.com/frahmantamala/family-ledger/cmd"

func main() {
	cmd.Execute()
}
