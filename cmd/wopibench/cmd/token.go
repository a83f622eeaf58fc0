package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

// tokenCmd asks the server for a WOPI access token bound to a node. The
// returned pair is what a host page would embed in the editor frame.
var tokenCmd = &cobra.Command{
	Use:   "token <node>",
	Short: "Obtain a WOPI access token for a node",
	RunE:  token,
}

func token(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		cmd.Help()
		return nil
	}

	logger := getLogger()

	credential, err := loadCredentials()
	if err != nil {
		logger.WithError(err).Error("cannot load credentials, run login first")
		os.Exit(1)
	}

	req, err := http.NewRequest("POST", os.Getenv("WOPIBENCH_ADDR")+"/wopi/token/"+args[0], nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logger.WithField("status", res.StatusCode).Error("token request refused")
		os.Exit(1)
	}

	jsonRes, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}
	tokenRes := &tokenRes{}
	if err := json.Unmarshal(jsonRes, tokenRes); err != nil {
		return err
	}

	fmt.Printf("access_token=%s\n", tokenRes.AccessToken)
	fmt.Printf("wopi_src=%s\n", tokenRes.WOPISrc)
	return nil
}

func init() {
	RootCmd.AddCommand(tokenCmd)
}
