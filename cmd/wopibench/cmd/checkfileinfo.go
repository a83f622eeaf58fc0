package cmd

import (
	"encoding/csv"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"time"

	br "github.com/cheggaaa/pb"
	"github.com/spf13/cobra"
)

var accessTokenFlag string

var checkFileInfoCmd = &cobra.Command{
	Use:   "checkfileinfo <node>",
	Short: "Benchmark getting node information using CheckFileInfo",
	RunE:  checkFileInfo,
}

func checkFileInfo(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		cmd.Help()
		return nil
	}

	logger := getLogger()

	tr := &http.Transport{
		MaxIdleConnsPerHost: concurrencyFlag,
	}
	client := &http.Client{
		Transport: tr,
	}

	url := os.Getenv("WOPIBENCH_ADDR") + "/wopi/files/" + args[0] + "?access_token=" + accessTokenFlag

	benchStart := time.Now()

	total := 0
	errorProbes := 0

	errChan := make(chan error)
	doneChan := make(chan bool)
	limitChan := make(chan int, concurrencyFlag)

	for i := 0; i < concurrencyFlag; i++ {
		limitChan <- 1
	}

	var bar *br.ProgressBar
	if progressBar {
		bar = br.StartNew(probesFlag)
	}

	for i := 0; i < probesFlag; i++ {
		go func() {
			<-limitChan
			defer func() {
				limitChan <- 1
			}()

			req, err := http.NewRequest("GET", url, nil)
			if err != nil {
				errChan <- err
				return
			}
			req.Close = true

			res, err := client.Do(req)
			if err != nil {
				errChan <- err
				return
			}
			defer res.Body.Close()
			ioutil.ReadAll(res.Body)

			if res.StatusCode == http.StatusOK {
				doneChan <- true
				return
			}

			errChan <- fmt.Errorf("internal error: status=%d", res.StatusCode)
		}()
	}

	for {
		select {
		case <-doneChan:
			total++
			if progressBar {
				bar.Increment()
			}
		case err := <-errChan:
			logger.WithError(err).Error("probe failed")
			errorProbes++
			total++
			if progressBar {
				bar.Increment()
			}
		}
		if total == probesFlag {
			break
		}
	}

	if progressBar {
		bar.Finish()
	}

	numberRequests := probesFlag
	concurrency := concurrencyFlag
	totalTime := time.Since(benchStart).Seconds()
	failedRequests := errorProbes
	frequency := float64(numberRequests-failedRequests) / totalTime
	period := float64(1 / frequency)

	data := [][]string{
		{"number-requests", "concurrency", "time", "failed-requests", "frequency", "period"},
		{fmt.Sprintf("%d", numberRequests), fmt.Sprintf("%d", concurrency), fmt.Sprintf("%f", totalTime), fmt.Sprintf("%d", failedRequests), fmt.Sprintf("%f", frequency), fmt.Sprintf("%f", period)},
	}
	w := csv.NewWriter(output)
	w.Comma = ','
	for _, d := range data {
		if err := w.Write(d); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

func init() {
	RootCmd.AddCommand(checkFileInfoCmd)
	checkFileInfoCmd.Flags().StringVarP(&accessTokenFlag, "access-token", "t", "", "WOPI access token to send with each probe")
}
