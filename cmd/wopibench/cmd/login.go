package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"
	"os/user"
	"path"

	"github.com/spf13/cobra"
)

// loginCmd obtains a repository credential and caches it on disk for
// the other commands.
var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Login into the repository",
	Run:   login,
}

func login(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		cmd.Help()
		os.Exit(1)
	}

	logger := getLogger()
	client := http.DefaultClient

	body, err := json.Marshal(&credentialsReq{Username: args[0], Password: args[1]})
	if err != nil {
		logger.WithError(err).Error("error encoding token request")
		os.Exit(1)
	}

	req, err := http.NewRequest("POST", os.Getenv("WOPIBENCH_ADDR")+"/authentication/token", bytes.NewReader(body))
	if err != nil {
		logger.WithError(err).Error("cannot create request")
		os.Exit(1)
	}

	res, err := client.Do(req)
	if err != nil {
		logger.WithError(err).Error("request failed")
		os.Exit(1)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logger.WithField("status", res.StatusCode).Error("login refused")
		os.Exit(1)
	}

	jsonRes, err := ioutil.ReadAll(res.Body)
	if err != nil {
		logger.WithError(err).Error("cannot read response")
		os.Exit(1)
	}
	tokenRes := &tokenRes{}
	if err := json.Unmarshal(jsonRes, tokenRes); err != nil {
		logger.WithError(err).Error("cannot decode response")
		os.Exit(1)
	}

	if err := saveCredentials(tokenRes.AccessToken); err != nil {
		logger.WithError(err).Error("cannot save credentials")
		os.Exit(1)
	}
}

func saveCredentials(token string) error {
	u, err := user.Current()
	if err != nil {
		return err
	}
	dir := path.Join(u.HomeDir, ".wopibench")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(path.Join(dir, "credentials"), []byte(token), 0644)
}

func loadCredentials() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	data, err := ioutil.ReadFile(path.Join(u.HomeDir, ".wopibench", "credentials"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	RootCmd.AddCommand(loginCmd)
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenRes struct {
	AccessToken string `json:"access_token"`
	WOPISrc     string `json:"wopi_src"`
}
