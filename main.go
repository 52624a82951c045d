package main

import "refseq-assign/cmd"

func main() {
	cmd.Execute()
}
