// ABOUTME: Login command with interactive credential prompt
// ABOUTME: Falls back to a huh form when flags are not provided

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Katya1803/nullpointer-cli/client"
)

var (
	loginAccount  string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with username or email",
	Long: `Authenticate against the NullPointer backend with a username or email
plus password. On success the refresh cookie is stored for later
invocations; the access token stays in memory only.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginAccount, "account", "", "Username or email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	account, password := loginAccount, loginPassword
	if account == "" || password == "" {
		if err := promptCredentials(&account, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	tokens, err := a.auth.Login(ctx, account, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(w, errStyle.Render("Login failed: ")+apiErr.Message)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		printJSON(w, tokens.User)
		return 0
	}

	fmt.Fprintln(w, okStyle.Render("Logged in")+" as "+tokens.User.Username+" <"+tokens.User.Email+">")
	return 0
}

func promptCredentials(account, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account").
				Description("Username or email").
				Value(account).
				Validate(notEmpty("account")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(notEmpty("password")),
		),
	)
	return form.Run()
}

func notEmpty(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
