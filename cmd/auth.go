// Package cmd implements the command-line interface for streamdex.
package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/streamdex-cli/streamdex/auth"
	"github.com/streamdex-cli/streamdex/color"
	"github.com/streamdex-cli/streamdex/icon"
	"github.com/streamdex-cli/streamdex/style"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd provides a parent command for managing the service credentials.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the aggregation service credentials",
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authLoginCmd.Flags().StringP("token", "t", "", "Provide the API token directly instead of prompting")
}

// authLoginCmd stores the service API token in the system keyring.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the service API token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")

		if token == "" {
			prompt := &survey.Password{
				Message: "API token",
				Help:    "The token is stored in the system keyring, never in the config file",
			}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(strings.TrimSpace(token)))
		fmt.Printf("%s token saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

// authLogoutCmd removes the stored token from the system keyring.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s token removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

// authStatusCmd reports whether a token is currently stored.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an API token is currently stored",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := auth.GetToken(); err != nil {
			fmt.Printf("%s not logged in\n", icon.Get(icon.Fail))
			return
		}

		fmt.Printf("%s logged in\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
