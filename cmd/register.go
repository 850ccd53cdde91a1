// ABOUTME: Register and OTP verification commands
// ABOUTME: Registration triggers an emailed OTP which verify-otp completes

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
	"github.com/Katya1803/nullpointer-cli/models"
	"github.com/Katya1803/nullpointer-cli/services"
)

var (
	registerUsername  string
	registerEmail     string
	registerPassword  string
	registerFirstName string
	registerLastName  string

	verifyEmail string
	verifyOtp   string

	resendEmail string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create a NullPointer account. The backend emails a 6-digit OTP;
finish with "nullpointer verify-otp".`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runRegister(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var verifyOtpCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Verify the emailed OTP code",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runVerifyOtp(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var resendOtpCmd = &cobra.Command{
	Use:   "resend-otp",
	Short: "Request a fresh OTP email",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if exitCode := runResendOtp(ctx, os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name (optional)")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name (optional)")

	verifyOtpCmd.Flags().StringVar(&verifyEmail, "email", "", "Email address")
	verifyOtpCmd.Flags().StringVar(&verifyOtp, "otp", "", "6-digit code from the email")

	resendOtpCmd.Flags().StringVar(&resendEmail, "email", "", "Email address")

	rootCmd.AddCommand(registerCmd, verifyOtpCmd, resendOtpCmd)
}

func runRegister(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if registerUsername == "" || registerEmail == "" || registerPassword == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Username").Value(&registerUsername).Validate(notEmpty("username")),
				huh.NewInput().Title("Email").Value(&registerEmail).Validate(notEmpty("email")),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&registerPassword).Validate(notEmpty("password")),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	resp, err := a.auth.Register(ctx, models.RegisterRequest{
		Username:  registerUsername,
		Email:     registerEmail,
		Password:  registerPassword,
		FirstName: registerFirstName,
		LastName:  registerLastName,
	})
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, resp)
		return 0
	}

	fmt.Fprintln(w, okStyle.Render("Account created")+" for "+resp.Username)
	if resp.NeedsVerification {
		fmt.Fprintln(w, mutedStyle.Render("Check your email for the OTP, then run: nullpointer verify-otp --email "+resp.Email))
	}
	return 0
}

func runVerifyOtp(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if verifyEmail == "" || verifyOtp == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Email").Value(&verifyEmail).Validate(notEmpty("email")),
				huh.NewInput().Title("OTP").Description("6-digit code from the email").Value(&verifyOtp).Validate(notEmpty("otp")),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	tokens, err := a.auth.VerifyOtp(ctx, verifyEmail, verifyOtp)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOtp) {
			fmt.Fprintln(w, errStyle.Render("Invalid code: ")+err.Error())
			return 1
		}
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, tokens.User)
		return 0
	}

	fmt.Fprintln(w, okStyle.Render("Verified")+", logged in as "+tokens.User.Username)
	return 0
}

func runResendOtp(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if resendEmail == "" {
		fmt.Fprintln(w, "Error: --email is required")
		return 2
	}

	if err := a.auth.ResendOtp(ctx, resendEmail); err != nil {
		return printAuthError(w, err)
	}

	fmt.Fprintln(w, okStyle.Render("OTP sent")+" to "+resendEmail)
	return 0
}

// printAuthError renders credential errors inline and transport errors
// verbatim. Exit code 1 means the backend rejected the request, 2 means
// it could not be asked.
func printAuthError(w io.Writer, err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(w, errStyle.Render("Failed: ")+apiErr.Message)
		for _, d := range apiErr.Details {
			fmt.Fprintf(w, "  %s: %s\n", d.Field, d.Message)
		}
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
