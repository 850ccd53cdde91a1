// ABOUTME: Blog post commands including the moderation workflow
// ABOUTME: posts list/show/create/submit and the admin approve/reject/pending

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Katya1803/nullpointer-cli/models"
)

var (
	postPage    int
	postSize    int
	postKeyword string
	postMine    bool
	postPending bool

	createTitle    string
	createSlug     string
	createExcerpt  string
	createFile     string
	createSeriesID string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse, write and moderate blog posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts (published by default; --mine or --pending for others)",
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(runPostsList)
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a post by slug",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runPostsShow(ctx, w, args[0])
		})
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft post from a markdown file",
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(runPostsCreate)
	},
}

var postsSubmitCmd = &cobra.Command{
	Use:   "submit <post-id>",
	Short: "Submit a draft for review",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runPostModeration(ctx, w, args[0], "submit")
		})
	},
}

var postsApproveCmd = &cobra.Command{
	Use:   "approve <post-id>",
	Short: "Approve a pending post (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runPostModeration(ctx, w, args[0], "approve")
		})
	},
}

var postsRejectCmd = &cobra.Command{
	Use:   "reject <post-id>",
	Short: "Reject a pending post (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runPostModeration(ctx, w, args[0], "reject")
		})
	},
}

func init() {
	postsListCmd.Flags().IntVar(&postPage, "page", 0, "Page number (0-based)")
	postsListCmd.Flags().IntVar(&postSize, "size", 10, "Page size")
	postsListCmd.Flags().StringVar(&postKeyword, "keyword", "", "Filter by keyword")
	postsListCmd.Flags().BoolVar(&postMine, "mine", false, "List your own posts")
	postsListCmd.Flags().BoolVar(&postPending, "pending", false, "List posts awaiting moderation (admin)")

	postsCreateCmd.Flags().StringVar(&createTitle, "title", "", "Post title")
	postsCreateCmd.Flags().StringVar(&createSlug, "slug", "", "URL slug")
	postsCreateCmd.Flags().StringVar(&createExcerpt, "excerpt", "", "Short excerpt")
	postsCreateCmd.Flags().StringVar(&createFile, "file", "", "Markdown file with the post content")
	postsCreateCmd.Flags().StringVar(&createSeriesID, "series", "", "Series ID to attach the post to")

	postsCmd.AddCommand(postsListCmd, postsShowCmd, postsCreateCmd, postsSubmitCmd, postsApproveCmd, postsRejectCmd)
	rootCmd.AddCommand(postsCmd)
}

func runPostsList(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	var page *models.Page[models.PostListItem]
	switch {
	case postPending:
		if err := a.requireAuth(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		page, err = a.posts.ListPending(ctx, postPage, postSize)
	case postMine:
		if err := a.requireAuth(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		page, err = a.posts.ListMine(ctx, postPage, postSize)
	default:
		page, err = a.posts.ListPublished(ctx, postPage, postSize, postKeyword)
	}
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	rows := make([][]string, 0, len(page.Content))
	for _, p := range page.Content {
		rows = append(rows, []string{p.Slug, truncate(p.Title, 48), p.Author, p.CreatedAt})
	}
	renderRows(w, []string{"SLUG", "TITLE", "AUTHOR", "CREATED"}, rows)
	fmt.Fprintln(w, pageFooter(page))
	return 0
}

func runPostsShow(ctx context.Context, w io.Writer, slug string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	detail, err := a.posts.GetBySlug(ctx, slug)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, detail)
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render(detail.Title))
	fmt.Fprintln(w, mutedStyle.Render("by "+detail.Author.Username+" · "+string(detail.Status)))
	if detail.Series != nil {
		fmt.Fprintln(w, mutedStyle.Render("series: "+detail.Series.Title))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, detail.Content)
	return 0
}

func runPostsCreate(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if createTitle == "" || createSlug == "" || createFile == "" {
		fmt.Fprintln(w, "Error: --title, --slug and --file are required")
		return 2
	}

	content, err := os.ReadFile(createFile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	detail, err := a.posts.Create(ctx, models.PostCreateRequest{
		Title:    createTitle,
		Slug:     createSlug,
		Excerpt:  createExcerpt,
		Content:  string(content),
		SeriesID: createSeriesID,
	})
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, detail)
		return 0
	}

	fmt.Fprintln(w, okStyle.Render("Draft created")+mutedStyle.Render(" (id "+detail.ID+")"))
	fmt.Fprintln(w, mutedStyle.Render("Submit for review with: nullpointer posts submit "+detail.ID))
	return 0
}

func runPostModeration(ctx context.Context, w io.Writer, postID, action string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	var detail *models.PostDetail
	switch action {
	case "submit":
		detail, err = a.posts.SubmitForReview(ctx, postID)
	case "approve":
		detail, err = a.posts.Approve(ctx, postID)
	case "reject":
		detail, err = a.posts.Reject(ctx, postID)
	}
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, detail)
		return 0
	}

	fmt.Fprintf(w, "%s %s is now %s\n", okStyle.Render("OK"), detail.Title, detail.Status)
	return 0
}
