package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print env vars used by the cli",
	Run:   env,
}

func env(cmd *cobra.Command, args []string) {
	fmt.Printf("export WOPIBENCH_ADDR=%s\n", os.Getenv("WOPIBENCH_ADDR"))
	fmt.Printf("export WOPIBENCH_USERNAME=%s\n", os.Getenv("WOPIBENCH_USERNAME"))
	fmt.Printf("export WOPIBENCH_PASSWORD=%s\n", os.Getenv("WOPIBENCH_PASSWORD"))
}

func init() {
	RootCmd.AddCommand(envCmd)
}
