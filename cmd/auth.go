package cmd

import (
	"fmt"
	"os"

	"drive-uploader/infrastructure/drive"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google authorization",
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the consent URL for obtaining an authorization code",
	Long: `Print the Google consent page URL for the configured client credentials.
Open it, approve access, and copy the "code" parameter from the redirect.
Pass that value as GOOGLE_AUTH_CODE to "auth login" or "run".

Example:
  drive-uploader auth url`,
	RunE: runAuthURL,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange GOOGLE_AUTH_CODE for a token and store it",
	Long: `Exchange the authorization code in GOOGLE_AUTH_CODE for a token and write it
to the token file. If a token file already exists it is used as-is and no
exchange happens; delete the file to authorize again.

Example:
  GOOGLE_AUTH_CODE=4/0Ab... drive-uploader auth login`,
	RunE: runAuthLogin,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authURLCmd)
	authCmd.AddCommand(authLoginCmd)
}

func runAuthURL(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	deps, err := newDependencies(cfg, os.Stdout)
	if err != nil {
		return err
	}

	creds, err := deps.manager().LoadCredentials()
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.output, "Visit this URL to authorize access to Google Drive:")
	fmt.Fprintln(deps.output)
	fmt.Fprintln(deps.output, drive.AuthCodeURL(creds))
	fmt.Fprintln(deps.output)
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	deps, err := newDependencies(cfg, os.Stdout)
	if err != nil {
		return err
	}

	session, err := deps.manager().Authenticate(cmd.Context(), cfg.AuthCode)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.output, "Authorized (token from %s, stored at %s)\n", session.Origin, cfg.Google.TokenFile)
	return nil
}
