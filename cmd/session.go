// ABOUTME: Logout, whoami and google-login commands
// ABOUTME: Session state commands built on the silent-refresh bootstrap

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var googleCode string

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long:  `Tell the backend to revoke the refresh token (best-effort) and clear local state.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runLogout(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runWhoami(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var googleLoginCmd = &cobra.Command{
	Use:   "google-login",
	Short: "Authenticate via Google OAuth",
	Long: `Without --code, prints the Google consent URL to visit. After
authorizing, rerun with --code to exchange the authorization code for a
session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runGoogleLogin(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	googleLoginCmd.Flags().StringVar(&googleCode, "code", "", "Authorization code from the Google redirect")
	rootCmd.AddCommand(logoutCmd, whoamiCmd, googleLoginCmd)
}

func runLogout(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	_ = a.auth.Logout(ctx)
	fmt.Fprintln(w, okStyle.Render("Logged out"))
	return 0
}

func runWhoami(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := a.client.Store().User()
	if user == nil {
		fmt.Fprintln(w, mutedStyle.Render("Not logged in"))
		return 1
	}

	if IsJSONOutput() {
		printJSON(w, user)
		return 0
	}

	fmt.Fprintf(w, "%s <%s>\n", user.Username, user.Email)
	fmt.Fprintln(w, mutedStyle.Render("roles: "+user.Roles))
	return 0
}

func runGoogleLogin(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if googleCode == "" {
		if a.cfg.GoogleClientID == "" {
			fmt.Fprintln(w, "Error: NULLPOINTER_GOOGLE_CLIENT_ID is not set")
			return 2
		}
		fmt.Fprintln(w, "Visit the URL below, authorize, then rerun with --code:")
		fmt.Fprintln(w, a.auth.GoogleAuthURL(a.cfg.GoogleClientID, a.cfg.GoogleRedirectURI))
		return 0
	}

	tokens, err := a.auth.GoogleCallback(ctx, googleCode)
	if err != nil {
		return printAuthError(w, err)
	}

	fmt.Fprintln(w, okStyle.Render("Logged in")+" as "+tokens.User.Username)
	return 0
}
