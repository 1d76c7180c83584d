package diaries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Export writes the collection as the same JSON array that is stored, indented.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	c, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to export diaries: %w", err)
	}
	return nil
}

// Import reads a JSON array of entries and upserts them in order with one
// write. Every entry is validated first; one bad entry rejects the whole import.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var incoming []Entry
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return 0, fmt.Errorf("failed to parse diary import: %w", err)
	}

	normalized := make([]Entry, 0, len(incoming))
	for i, entry := range incoming {
		n, err := normalize(entry)
		if err != nil {
			return 0, fmt.Errorf("entry %d (%q): %w", i, entry.Date, err)
		}
		normalized = append(normalized, n)
	}

	c, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, entry := range normalized {
		c = c.Upsert(entry)
	}
	if err := s.save(ctx, c); err != nil {
		return 0, err
	}

	s.logger.Info("diaries imported", zap.Int("imported", len(normalized)), zap.Int("entries", len(c)))
	return len(normalized), nil
}
