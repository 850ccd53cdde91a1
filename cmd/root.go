// ABOUTME: Root command for the nullpointer CLI
// ABOUTME: Handles global flags, configuration and client construction

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Katya1803/nullpointer-cli/client"
	"github.com/Katya1803/nullpointer-cli/config"
	"github.com/Katya1803/nullpointer-cli/services"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "nullpointer",
	Short: "CLI for the NullPointer e-learning platform",
	Long: `nullpointer is a command-line client for the NullPointer e-learning
and blogging platform: course browsing and enrollment, lecture progress,
blog posts and series with the admin moderation workflow, ebooks, and
authentication (password, email OTP, Google OAuth).

The session is restored silently on every invocation from the refresh
cookie; the access token itself is never written to disk.

Environment Variables:
  NULLPOINTER_API_URL    Backend API URL (default: http://localhost:8080)
  NULLPOINTER_STATE_DIR  Directory for the cookie jar and device ID`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides NULLPOINTER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// app bundles the configured client and services for a command run.
type app struct {
	cfg         *config.Config
	client      *client.Client
	auth        *services.AuthService
	users       *services.UserService
	courses     *services.CourseService
	enrollments *services.EnrollmentService
	posts       *services.PostService
	series      *services.SeriesService
	ebooks      *services.EbookService
}

// newApp loads config, builds the client and restores the session from
// the refresh cookie. A rejected cookie just leaves the session
// anonymous; only transport failures surface as warnings.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	c, err := client.New(client.Options{
		BaseURL:        cfg.APIURL,
		Timeout:        time.Duration(cfg.RequestTimeout) * time.Second,
		RefreshTimeout: time.Duration(cfg.RefreshTimeout) * time.Second,
		CookiePath:     cfg.CookiePath(),
		DeviceIDPath:   cfg.DeviceIDPath(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := c.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not reach %s: %v\n", cfg.APIURL, err)
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	return &app{
		cfg:         cfg,
		client:      c,
		auth:        services.NewAuthService(c),
		users:       services.NewUserService(c),
		courses:     services.NewCourseService(c, cacheTTL),
		enrollments: services.NewEnrollmentService(c),
		posts:       services.NewPostService(c),
		series:      services.NewSeriesService(c),
		ebooks:      services.NewEbookService(c, cacheTTL),
	}, nil
}

// requireAuth fails fast when no session could be restored, instead of
// letting every call 401.
func (a *app) requireAuth() error {
	if a.client.Store().User() == nil {
		return fmt.Errorf("not logged in (run: nullpointer login)")
	}
	return nil
}
