// ABOUTME: Series and ebook browsing commands
// ABOUTME: Read-only listings; management goes through the backend admin API

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	ebookPage    int
	ebookSize    int
	ebookKeyword string
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Browse post series",
}

var seriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all series",
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(runSeriesList)
	},
}

var seriesShowCmd = &cobra.Command{
	Use:   "show <series-id>",
	Short: "Show a series with its posts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runSeriesShow(ctx, w, args[0])
		})
	},
}

var ebooksCmd = &cobra.Command{
	Use:   "ebooks",
	Short: "Browse ebooks",
}

var ebooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ebooks",
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(runEbooksList)
	},
}

var ebooksShowCmd = &cobra.Command{
	Use:   "show <ebook-id>",
	Short: "Show an ebook with its download link",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runEbooksShow(ctx, w, args[0])
		})
	},
}

func init() {
	ebooksListCmd.Flags().IntVar(&ebookPage, "page", 0, "Page number (0-based)")
	ebooksListCmd.Flags().IntVar(&ebookSize, "size", 12, "Page size")
	ebooksListCmd.Flags().StringVar(&ebookKeyword, "keyword", "", "Filter by keyword")

	seriesCmd.AddCommand(seriesListCmd, seriesShowCmd)
	ebooksCmd.AddCommand(ebooksListCmd, ebooksShowCmd)
	rootCmd.AddCommand(seriesCmd, ebooksCmd)
}

func runSeriesList(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	series, err := a.series.List(ctx)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, series)
		return 0
	}

	rows := make([][]string, 0, len(series))
	for _, s := range series {
		rows = append(rows, []string{s.ID, s.Slug, truncate(s.Title, 48)})
	}
	renderRows(w, []string{"ID", "SLUG", "TITLE"}, rows)
	return 0
}

func runSeriesShow(ctx context.Context, w io.Writer, seriesID string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	detail, err := a.series.Get(ctx, seriesID)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, detail)
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render(detail.Title))
	if detail.Description != "" {
		fmt.Fprintln(w, detail.Description)
	}
	for _, p := range detail.Posts {
		order := "-"
		if p.Order != nil {
			order = fmt.Sprintf("%d", *p.Order)
		}
		fmt.Fprintf(w, "  %s. %s (%s)\n", order, p.Title, p.Slug)
	}
	return 0
}

func runEbooksList(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := a.ebooks.List(ctx, ebookPage, ebookSize, ebookKeyword)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	rows := make([][]string, 0, len(page.Content))
	for _, e := range page.Content {
		year := "-"
		if e.PublishedYear != 0 {
			year = fmt.Sprintf("%d", e.PublishedYear)
		}
		rows = append(rows, []string{e.ID, truncate(e.Title, 48), e.Author, year})
	}
	renderRows(w, []string{"ID", "TITLE", "AUTHOR", "YEAR"}, rows)
	fmt.Fprintln(w, pageFooter(page))
	return 0
}

func runEbooksShow(ctx context.Context, w io.Writer, ebookID string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	detail, err := a.ebooks.Get(ctx, ebookID)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, detail)
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render(detail.Title))
	fmt.Fprintln(w, mutedStyle.Render("by "+detail.Author))
	if detail.Description != "" {
		fmt.Fprintln(w, detail.Description)
	}
	fmt.Fprintln(w, "download: "+detail.DownloadURL)
	return 0
}
