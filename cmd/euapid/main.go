/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/wiwski/euphrosyne-tools-api/cmd/euapid/cmd"

func main() {
	cmd.Execute()
}
