package main

import (
	"github.com/glasswing-ui/glasswing/cmd"
)

func main() {
	cmd.Execute()
}
