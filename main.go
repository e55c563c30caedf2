package main

import "github.com/jsphweid/midialign/cmd"

func main() {
	cmd.Execute()
}
