// ABOUTME: Course browsing, enrollment and progress commands
// ABOUTME: courses list/show/enroll/progress plus my-learning

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

var (
	coursePage    int
	courseSize    int
	courseKeyword string

	learningPage int
	learningSize int
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse and enroll in courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published courses",
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runCoursesList(ctx, w)
		})
	},
}

var coursesShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a course with its sections and lectures",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runCoursesShow(ctx, w, args[0])
		})
	},
}

var coursesEnrollCmd = &cobra.Command{
	Use:   "enroll <course-id>",
	Short: "Enroll in a course",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runCoursesEnroll(ctx, w, args[0])
		})
	},
}

var coursesProgressCmd = &cobra.Command{
	Use:   "progress <course-id>",
	Short: "Show lecture-level progress for an enrolled course",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runCoursesProgress(ctx, w, args[0])
		})
	},
}

var learningCmd = &cobra.Command{
	Use:   "my-learning",
	Short: "List your enrollments with progress",
	Run: func(cmd *cobra.Command, args []string) {
		runWithExit(func(ctx context.Context, w io.Writer) int {
			return runMyLearning(ctx, w)
		})
	},
}

func init() {
	coursesListCmd.Flags().IntVar(&coursePage, "page", 0, "Page number (0-based)")
	coursesListCmd.Flags().IntVar(&courseSize, "size", 20, "Page size")
	coursesListCmd.Flags().StringVar(&courseKeyword, "keyword", "", "Filter by keyword")

	learningCmd.Flags().IntVar(&learningPage, "page", 0, "Page number (0-based)")
	learningCmd.Flags().IntVar(&learningSize, "size", 20, "Page size")

	coursesCmd.AddCommand(coursesListCmd, coursesShowCmd, coursesEnrollCmd, coursesProgressCmd)
	rootCmd.AddCommand(coursesCmd, learningCmd)
}

// runWithExit wires the signal context and exit code plumbing shared by
// every leaf command.
func runWithExit(fn func(context.Context, io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if exitCode := fn(ctx, os.Stdout); exitCode != 0 {
		os.Exit(exitCode)
	}
}

func runCoursesList(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := a.courses.ListPublished(ctx, coursePage, courseSize, courseKeyword)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	rows := make([][]string, 0, len(page.Content))
	for _, c := range page.Content {
		rows = append(rows, []string{
			c.Slug,
			truncate(c.Title, 48),
			fmt.Sprintf("%d sections", c.TotalSections),
			fmt.Sprintf("%d lectures", c.TotalLectures),
		})
	}
	renderRows(w, []string{"SLUG", "TITLE", "SECTIONS", "LECTURES"}, rows)
	fmt.Fprintln(w, pageFooter(page))
	return 0
}

func runCoursesShow(ctx context.Context, w io.Writer, slug string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	detail, err := a.courses.GetBySlug(ctx, slug)
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
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d sections, %d lectures", detail.TotalSections, detail.TotalLectures)))
	for _, section := range detail.Sections {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d. %s", section.SortOrder, section.Title)))
		for _, lecture := range section.Lectures {
			marker := " "
			if lecture.IsPreview {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %s (%s, %ds)\n", marker, lecture.Title, lecture.Type, lecture.Duration)
		}
	}
	return 0
}

func runCoursesEnroll(ctx context.Context, w io.Writer, courseID string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	enrollment, err := a.enrollments.Enroll(ctx, courseID)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, enrollment)
		return 0
	}

	fmt.Fprintln(w, okStyle.Render("Enrolled")+mutedStyle.Render(" (enrollment "+enrollment.ID+")"))
	return 0
}

func runCoursesProgress(ctx context.Context, w io.Writer, courseID string) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	progress, err := a.enrollments.Progress(ctx, courseID)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, progress)
		return 0
	}

	fmt.Fprintln(w, titleStyle.Render(progress.CourseTitle))
	fmt.Fprintf(w, "%d/%d lectures completed (%.0f%%)\n",
		progress.CompletedLectures, progress.TotalLectures, progress.ProgressPercentage)
	for _, section := range progress.Sections {
		fmt.Fprintln(w, headerStyle.Render(section.SectionTitle))
		for _, lecture := range section.Lectures {
			marker := "[ ]"
			if lecture.IsCompleted {
				marker = "[x]"
			}
			fmt.Fprintf(w, "  %s %s\n", marker, lecture.LectureTitle)
		}
	}
	return 0
}

func runMyLearning(ctx context.Context, w io.Writer) int {
	a, err := newApp(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := a.requireAuth(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	page, err := a.enrollments.MyEnrollments(ctx, learningPage, learningSize)
	if err != nil {
		return printAuthError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}

	rows := make([][]string, 0, len(page.Content))
	for _, e := range page.Content {
		rows = append(rows, []string{
			e.Course.Slug,
			truncate(e.Course.Title, 48),
			fmt.Sprintf("%.0f%%", e.ProgressPercentage),
		})
	}
	renderRows(w, []string{"SLUG", "TITLE", "PROGRESS"}, rows)
	fmt.Fprintln(w, pageFooter(page))
	return 0
}
