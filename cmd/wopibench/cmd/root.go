package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var probesFlag int
var concurrencyFlag int
var csvFile string
var progressBar bool
var logfile string

var output io.Writer

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "wopibench",
	Short: "WOPI Benchmarking Tool",
	Long:  `wopibench is a tool for benchmarking WOPI endpoints.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().IntVarP(&probesFlag, "requests", "n", 1, "Number of requests to perform for the benchmarking session. The default is to just perform a single request which usually leads to non-representative benchmarking results.")
	RootCmd.PersistentFlags().IntVarP(&concurrencyFlag, "concurrency", "c", 1, "Number of multiple requests to perform at a time. Default is one request at a time.")
	RootCmd.PersistentFlags().StringVarP(&csvFile, "csv-file", "", "", "Write the results to a Comma separated value (CSV) file.")
	RootCmd.PersistentFlags().BoolVar(&progressBar, "progress-bar", true, "Show progress bar")
	RootCmd.PersistentFlags().StringVarP(&logfile, "log-file", "", "", "Write errors to this file. It logs to stderr by default")
}

// initConfig opens the output the benchmark results go to.
func initConfig() {
	if csvFile != "" {
		fd, err := os.Create(csvFile)
		if err != nil {
			fmt.Printf("Cannot open csv file: %s\n", err.Error())
			os.Exit(1)
		}
		output = fd
	} else {
		output = os.Stdout
	}
}
