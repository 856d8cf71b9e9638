package main

import (
	"github.com/podsync-io/podsync/cmd"
	"github.com/podsync-io/podsync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
