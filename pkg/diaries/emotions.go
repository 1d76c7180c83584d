package diaries

import (
	"fmt"
	"strings"
)

// Emotion tags a day's entry.
type Emotion string

const (
	Happy    Emotion = "Happy"
	Sad      Emotion = "Sad"
	Tired    Emotion = "Tired"
	Excited  Emotion = "Excited"
	Angry    Emotion = "Angry"
	Relaxed  Emotion = "Relaxed"
	Confused Emotion = "Confused"
	Loved    Emotion = "Loved"
)

// DefaultEmotion is what an unsaved day shows.
const DefaultEmotion = Happy

// fallbackColor is used for tags outside the known set, e.g. from hand-edited imports.
const fallbackColor = "#ffffff"

var emotions = []Emotion{Happy, Sad, Tired, Excited, Angry, Relaxed, Confused, Loved}

var emotionColors = map[Emotion]string{
	Happy:    "#2ecc71",
	Sad:      "#3498db",
	Tired:    "#f1c40f",
	Excited:  "#e67e22",
	Angry:    "#e74c3c",
	Relaxed:  "#9b59b6",
	Confused: "#95a5a6",
	Loved:    "#ff6b81",
}

// Emotions lists every tag in display order.
func Emotions() []Emotion {
	return append([]Emotion(nil), emotions...)
}

// Valid reports whether e is one of the four known emotions.
func (e Emotion) Valid() bool {
	_, ok := emotionColors[e]
	return ok
}

// Color is the hex color the calendar paints a day with.
func (e Emotion) Color() string {
	if c, ok := emotionColors[e]; ok {
		return c
	}
	return fallbackColor
}

func (e Emotion) String() string {
	return string(e)
}

// ParseEmotion matches s against the known tags ignoring case.
func ParseEmotion(s string) (Emotion, error) {
	s = strings.TrimSpace(s)
	for _, e := range emotions {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, s)
}

func emotionNames() string {
	names := make([]string, len(emotions))
	for i, e := range emotions {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
