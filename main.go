package main

import "github.com/yzeal/chorusing-sub001/cmd"

func main() {
	cmd.Execute()
}
