package main

import "github.com/kamal-hamza/svgcheck/cmd"

func main() {
	cmd.Execute()
}
