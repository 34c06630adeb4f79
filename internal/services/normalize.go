package services

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/selimacar/exercise-tracker/internal/models"
)

// dayFormat is the stored and displayed date form, e.g. "Mon Jan 01 2024".
const dayFormat = "Mon Jan 02 2006"

var dateLayouts = []string{"2006-01-02", dayFormat}

func parseDay(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func formatDay(t time.Time) string { return t.Format(dayFormat) }

// capitalize lowercases s, then uppercases the first letter of every word
// of two or more word characters. Single-letter words stay lowercase.
func capitalize(s string) string {
	b := []rune(strings.ToLower(s))
	inWord := false
	for i, r := range b {
		isW := isWordRune(r)
		if isW && !inWord && i+1 < len(b) && isWordRune(b[i+1]) {
			b[i] = unicode.ToUpper(r)
		}
		inWord = isW
	}
	return string(b)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// sortLogDesc orders entries most-recent first. Entries whose stored date
// fails to parse sort last.
func sortLogDesc(log []models.Exercise) {
	at := func(e models.Exercise) time.Time {
		t, _ := time.Parse(dayFormat, e.Date)
		return t
	}
	sort.SliceStable(log, func(i, j int) bool { return at(log[i]).After(at(log[j])) })
}
