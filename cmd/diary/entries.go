package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/diary/pkg/analysis"
	"github.com/unowned-ai/diary/pkg/calendar"
	"github.com/unowned-ai/diary/pkg/diaries"
)

// now is swapped in tests.
var now = time.Now

func newWriteCmd(a *app) *cobra.Command {
	var dateFlag, emotionFlag, textFlag string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the diary for a day",
		Long: `Save the diary for one day, replacing whatever was saved for that day.
The text comes from --text, or from stdin when --text is not given. Only English
text is accepted.`,
		Example: `  diary write --text "Long walk by the river." --emotion relaxed
  diary write --date yesterday --emotion tired < notes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ResolveKey(dateFlag, a.cfg.DateLayout, now())
			if err != nil {
				return err
			}
			emotion, err := diaries.ParseEmotion(emotionFlag)
			if err != nil {
				return errors.New(diaries.UserMessage(err))
			}

			text := textFlag
			if !cmd.Flags().Changed("text") {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read diary text from stdin: %w", err)
				}
				text = string(raw)
			}

			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			entry, err := sess.store.Upsert(cmd.Context(), diaries.Entry{Date: date, Text: text, Emotion: emotion})
			if diaries.IsValidation(err) {
				return errors.New(diaries.UserMessage(err))
			}
			if err != nil {
				return fmt.Errorf("failed to save diary: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Diary saved for %s (%s, %s).\n", entry.Date, entry.Emotion, goalLine(entry.Text))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "today", "Day to write: today, yesterday, YYYY-MM-DD or a stored date key")
	cmd.Flags().StringVarP(&emotionFlag, "emotion", "e", string(diaries.DefaultEmotion), "Emotion tag: "+strings.Join(emotionNames(), ", "))
	cmd.Flags().StringVarP(&textFlag, "text", "t", "", "Diary text (read from stdin if omitted)")
	cmd.RegisterFlagCompletionFunc("emotion", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return emotionNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var strictFlag, jsonFlag bool

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the diary for a day",
		Long: `Show the diary for a day (today by default). A day without a diary shows an
empty Happy page unless --strict is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			date, err := calendar.ResolveKey(arg, a.cfg.DateLayout, now())
			if err != nil {
				return err
			}

			sess, err := a.openSession(strictFlag)
			if err != nil {
				return err
			}
			defer sess.Close()

			var entry diaries.Entry
			if strictFlag {
				entry, err = sess.store.Require(cmd.Context(), date)
				if errors.Is(err, diaries.ErrEntryNotFound) {
					return fmt.Errorf("no diary saved for %s", date)
				}
			} else {
				entry, err = sess.store.GetByDate(cmd.Context(), date)
			}
			if err != nil {
				return fmt.Errorf("failed to get diary: %w", err)
			}

			if jsonFlag {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Fail when no diary is saved for the day, and on unreadable storage")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the entry as JSON")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every saved diary",
		Long:  `List all saved diaries in the order they were first written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			entries, err := sess.store.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list diaries: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No diaries yet.")
				return nil
			}

			fmt.Fprintln(out, "Date | Emotion | Words | Text")
			fmt.Fprintln(out, "------------------------------------------------------------")
			for _, e := range entries {
				fmt.Fprintf(out, "%s | %s | %d | %s\n", e.Date, e.Emotion, analysis.WordCount(e.Text), preview(e.Text, 48))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the collection as JSON")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all diaries as JSON",
		Long:  `Write the whole collection as the JSON array it is stored as. The output can be loaded back with import.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			if outFlag == "" || outFlag == "-" {
				return sess.store.Export(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(outFlag)
			if err != nil {
				return fmt.Errorf("failed to create export file '%s': %w", outFlag, err)
			}
			if err := sess.store.Export(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write export file '%s': %w", outFlag, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported diaries to %s\n", outFlag)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "File to write (stdout if omitted)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import diaries from a JSON export",
		Long: `Load a JSON array of {"date","text","emotion"} objects, such as a previous export.
Entries replace saved diaries with the same date. If any entry is invalid nothing is imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open import file '%s': %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			n, err := sess.store.Import(cmd.Context(), in)
			if err != nil {
				if diaries.IsValidation(err) {
					return fmt.Errorf("%s (%w)", diaries.UserMessage(err), err)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d diaries.\n", n)
			return nil
		},
	}
}

func printEntry(w io.Writer, entry diaries.Entry) {
	fmt.Fprintf(w, "Date:    %s\n", entry.Date)
	fmt.Fprintf(w, "Emotion: %s\n", entry.Emotion)
	fmt.Fprintf(w, "%s\n\n", goalLine(entry.Text))
	if entry.Text == "" {
		fmt.Fprintln(w, "(nothing written yet)")
		return
	}
	fmt.Fprintln(w, entry.Text)
}

func goalLine(text string) string {
	line := fmt.Sprintf("Goal: %d (%d words written)", analysis.GoalWords, analysis.WordCount(text))
	if analysis.GoalReached(text) {
		line += " - goal reached"
	}
	return line
}

// preview returns the first line of text cut to limit runes.
func preview(text string, limit int) string {
	line, _, more := strings.Cut(text, "\n")
	r := []rune(line)
	if len(r) > limit {
		return string(r[:limit-2]) + ".."
	}
	if more {
		return line + " .."
	}
	return line
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func emotionNames() []string {
	names := make([]string, 0, len(diaries.Emotions()))
	for _, e := range diaries.Emotions() {
		names = append(names, e.String())
	}
	return names
}
