package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "quanda"}

	root.AddCommand(serveCMD(), migrateCMD(), seedCMD(), askCMD())
	_ = root.Execute()
}
