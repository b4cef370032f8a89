package main

import (
	"os"

	"github.com/rskv-p/hier/cmd"
	"github.com/rskv-p/hier/pkg/x_log"
)

func main() {
	// bootstrap logging from XLOG_CONFIG until the command loads its own config
	x_log.Init()
	os.Exit(cmd.Execute())
}
