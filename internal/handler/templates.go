package handler

import (
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rkiviaho/trainerdesk/internal/domain"
)

// TemplateFuncs returns a FuncMap with custom template functions.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},

		// Column labels from field names ("streetaddress" -> "Streetaddress").
		// Casers are stateful, so build one per call.
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},

		// Training timestamps render as dd.MM.yyyy HH:mm
		"formatTrainingDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(domain.DisplayTimeLayout)
		},
	}
}
