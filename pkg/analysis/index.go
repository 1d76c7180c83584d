// Package analysis derives the word dictionary and word lookups from a diary
// collection. Nothing here is persisted; every call recomputes from the
// collection it is given.
package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orsinium-labs/stopwords"

	"github.com/unowned-ai/diary/pkg/diaries"
)

// minWordRunes is the shortest token the frequency count keeps.
const minWordRunes = 3

// WordEntry is one dictionary word with its corpus count and the dates of
// the entries it appears in.
type WordEntry struct {
	Word  string   `json:"word"`
	Count int      `json:"count"`
	Dates []string `json:"dates"`
}

// Bucket groups the words sharing an upper-cased first letter.
type Bucket struct {
	Letter string      `json:"letter"`
	Words  []WordEntry `json:"words"`
}

// Index is the word dictionary of a collection, grouped by first letter.
type Index struct {
	Buckets []Bucket `json:"buckets"`
	// Letters is the alphabet strip: bucket letters in the order they appear.
	Letters []string `json:"letters"`
}

type options struct {
	stopwords *stopwords.Stopwords
}

type Option func(*options)

// WithStopwords drops common English words from the index.
func WithStopwords(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.stopwords = stopwords.MustGet("en")
		} else {
			o.stopwords = nil
		}
	}
}

// BuildIndex computes the word dictionary of c.
//
// Counts come from the whole corpus and only include tokens of three or more
// runes. Dates are recorded for every token of every entry, so a word's dates
// list each entry containing it once, in collection order.
func BuildIndex(c diaries.Collection, opts ...Option) Index {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	texts := make([]string, len(c))
	for i, e := range c {
		texts[i] = e.Text
	}
	corpus := strings.Join(texts, " ")

	freq := make(map[string]int)
	for _, token := range strings.Fields(corpus) {
		if utf8.RuneCountInString(token) < minWordRunes {
			continue
		}
		freq[strings.ToLower(token)]++
	}

	wordDates := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, e := range c {
		for _, token := range strings.Fields(e.Text) {
			w := strings.ToLower(token)
			dates, ok := seen[w]
			if !ok {
				dates = make(map[string]struct{})
				seen[w] = dates
			}
			if _, dup := dates[e.Date]; dup {
				continue
			}
			dates[e.Date] = struct{}{}
			wordDates[w] = append(wordDates[w], e.Date)
		}
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		if o.stopwords != nil && o.stopwords.Contains(w) {
			continue
		}
		words = append(words, w)
	}
	sort.Strings(words)

	idx := Index{Buckets: []Bucket{}, Letters: []string{}}
	bucketOf := make(map[string]int)
	for _, w := range words {
		letter := firstLetter(w)
		i, ok := bucketOf[letter]
		if !ok {
			i = len(idx.Buckets)
			bucketOf[letter] = i
			idx.Buckets = append(idx.Buckets, Bucket{Letter: letter})
			idx.Letters = append(idx.Letters, letter)
		}
		dates := wordDates[w]
		if dates == nil {
			dates = []string{}
		}
		idx.Buckets[i].Words = append(idx.Buckets[i].Words, WordEntry{
			Word:  w,
			Count: freq[w],
			Dates: dates,
		})
	}
	return idx
}

func firstLetter(w string) string {
	r, _ := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r))
}

// Bucket returns the bucket for letter, matched ignoring case.
func (idx Index) Bucket(letter string) (Bucket, bool) {
	for _, b := range idx.Buckets {
		if strings.EqualFold(b.Letter, letter) {
			return b, true
		}
	}
	return Bucket{}, false
}

// Lookup finds the dictionary entry for word.
func (idx Index) Lookup(word string) (WordEntry, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	b, ok := idx.Bucket(firstLetter(w))
	if !ok {
		return WordEntry{}, false
	}
	i := sort.Search(len(b.Words), func(i int) bool { return b.Words[i].Word >= w })
	if i < len(b.Words) && b.Words[i].Word == w {
		return b.Words[i], true
	}
	return WordEntry{}, false
}

// Words flattens the buckets back into the sorted word list.
func (idx Index) Words() []WordEntry {
	var all []WordEntry
	for _, b := range idx.Buckets {
		all = append(all, b.Words...)
	}
	return all
}

// Total is the number of distinct dictionary words.
func (idx Index) Total() int {
	n := 0
	for _, b := range idx.Buckets {
		n += len(b.Words)
	}
	return n
}
