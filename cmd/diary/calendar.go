package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/diaries"
)

var (
	blankDayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2c3e50")).Background(lipgloss.Color("#ffffff"))
	todayStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

func newCalendarCmd(a *app) *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with each written day colored by its emotion",
		Example: `  diary calendar
  diary calendar --month 2025-03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := calendar.ParseMonth(monthFlag, now())
			if err != nil {
				return err
			}

			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			entries, err := sess.store.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read diaries: %w", err)
			}

			renderMonth(cmd.OutOrStdout(), month, entries.ForMonth(month, a.cfg.DateLayout), now())
			return nil
		},
	}
	cmd.Flags().StringVarP(&monthFlag, "month", "m", "", "Month to show as YYYY-MM (default: current month)")
	return cmd
}

func renderMonth(w io.Writer, month calendar.Month, saved map[int]diaries.Entry, today time.Time) {
	fmt.Fprintln(w, month.Title())
	fmt.Fprintln(w, " Su  Mo  Tu  We  Th  Fr  Sa ")

	for _, week := range month.Grid() {
		var row strings.Builder
		for _, d := range week {
			if d == 0 {
				row.WriteString("    ")
				continue
			}
			style := blankDayStyle
			if e, ok := saved[d]; ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color("#ffffff")).
					Background(lipgloss.Color(e.Emotion.Color()))
			}
			if month.Contains(today) && today.Day() == d {
				style = style.Inherit(todayStyle)
			}
			row.WriteString(style.Render(fmt.Sprintf(" %2d ", d)))
		}
		fmt.Fprintln(w, row.String())
	}

	legend := make([]string, 0, len(diaries.Emotions()))
	for _, e := range diaries.Emotions() {
		legend = append(legend, lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color())).Render(e.String()))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d days written. %s\n", len(saved), strings.Join(legend, " "))
}
