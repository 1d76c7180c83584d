package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/diary/pkg/analysis"
)

var (
	letterStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1abc9c"))
	hitStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
)

func newWordsCmd(a *app) *cobra.Command {
	var letterFlag string
	var stopwordsFlag, jsonFlag bool

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show the word dictionary built from all diaries",
		Long: `List every word of three or more letters used across all diaries with the
number of times it was written, grouped by first letter. The first line is the
alphabet strip of letters that have words.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(false)
			if err != nil {
				return err
			}
			defer sess.Close()

			entries, err := sess.store.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read diaries: %w", err)
			}
			idx := analysis.BuildIndex(entries, analysis.WithStopwords(stopwordsFlag))

			buckets := idx.Buckets
			if letterFlag != "" {
				bucket, ok := idx.Bucket(letterFlag)
				if !ok {
					return fmt.Errorf("no words start with %q", letterFlag)
				}
				buckets = []analysis.Bucket{bucket}
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				if letterFlag != "" {
					return writeJSON(out, buckets[0])
				}
				return writeJSON(out, idx)
			}
			if idx.Total() == 0 {
				fmt.Fprintln(out, "No words yet. Write a diary first.")
				return nil
			}

			fmt.Fprintln(out, strings.Join(idx.Letters, " "))
			for _, b := range buckets {
				fmt.Fprintln(out)
				fmt.Fprintln(out, letterStyle.Render(b.Letter))
				for _, w := range b.Words {
					fmt.Fprintf(out, "  - %s: %d times\n", w.Word, w.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&letterFlag, "letter", "l", "", "Only show words starting with this letter")
	cmd.Flags().BoolVar(&stopwordsFlag, "stopwords", false, "Drop common English words such as 'the' and 'and'")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the dictionary as JSON")
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "find WORD",
		Short: "Find the diaries containing a word",
		Long: `List the diaries whose text contains WORD, ignoring case. Parts of longer
words match too, so "cat" also finds "concatenate".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := strings.TrimSpace(args[0])
			if word == "" {
				return fmt.Errorf("word must not be empty")
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
			matches := analysis.FindEntriesContaining(word, entries)

			out := cmd.OutOrStdout()
			if jsonFlag {
				return writeJSON(out, matches)
			}
			if len(matches) == 0 {
				fmt.Fprintf(out, "No diaries mention %q.\n", word)
				return nil
			}

			h, err := analysis.NewHighlighter(word)
			if err != nil {
				return fmt.Errorf("failed to build highlighter: %w", err)
			}
			for i, e := range matches {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", e.Date, e.Emotion)
				fmt.Fprintln(out, analysis.Highlight(e.Text, h.Spans(e.Text), markHit))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the matching entries as JSON")
	return cmd
}

func markHit(s string) string {
	return hitStyle.Render(s)
}
