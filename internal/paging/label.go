package paging

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for the localized pagination strings.
const (
	keyShowing = "Showing %d–%d of %d"
	keyAll     = "Showing all %d"
	keyEmpty   = "No results"
	keyPageOf  = "Page %d of %d"
)

func init() {
	for _, e := range []struct {
		tag language.Tag
		key string
		msg string
	}{
		{language.English, keyShowing, "Showing %d–%d of %d"},
		{language.English, keyAll, "Showing all %d"},
		{language.English, keyEmpty, "No results"},
		{language.English, keyPageOf, "Page %d of %d"},
		{language.Arabic, keyShowing, "عرض %d–%d من %d"},
		{language.Arabic, keyAll, "عرض الكل %d"},
		{language.Arabic, keyEmpty, "لا توجد نتائج"},
		{language.Arabic, keyPageOf, "صفحة %d من %d"},
	} {
		_ = message.SetString(e.tag, e.key, e.msg)
	}
}

// Labeler renders human-readable pagination labels for one locale.
type Labeler struct {
	p *message.Printer
}

// NewLabeler returns a labeler for a BCP 47 locale such as "en" or "ar".
// Unknown locales fall back to English.
func NewLabeler(locale string) *Labeler {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	matcher := language.NewMatcher([]language.Tag{language.English, language.Arabic})
	_, idx, _ := matcher.Match(tag)
	if idx == 1 {
		tag = language.Arabic
	} else {
		tag = language.English
	}
	return &Labeler{p: message.NewPrinter(tag)}
}

// Showing returns the "Showing X–Y of N" label for w.
func (l *Labeler) Showing(w Window) string {
	switch {
	case !w.Visible:
		return l.p.Sprintf(keyEmpty)
	case w.All():
		return l.p.Sprintf(keyAll, w.Total)
	default:
		return l.p.Sprintf(keyShowing, w.From, w.To, w.Total)
	}
}

// PageOf returns the "Page X of Y" label for w.
func (l *Labeler) PageOf(w Window) string {
	return l.p.Sprintf(keyPageOf, w.Page, w.PageCount)
}
