// ./main.go
package main

import (
	"github.com/strobelight/pagemotor/cmd"
)

func main() {
	cmd.Execute()
}
