// Package taxonomy expands parameterized keyword templates over subject,
// grade and place dimensions into a flat, deterministically ordered list of
// keyword candidates.
package taxonomy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/studybuddy/pseo-engine/internal/types"
)

// Placeholder names recognized inside keyword templates
const (
	placeholderSubject = "{subject}"
	placeholderGrade   = "{grade}"
	placeholderPlace   = "{place}"
)

// Template is one parameterized keyword pattern. The pattern may bind zero
// or more placeholders; absent placeholders are simply not substituted.
type Template struct {
	Pattern       string         `json:"pattern"`
	Category      types.Category `json:"category"`
	PriorityClass int            `json:"priority_class"`
}

// Dimensions supplies the values substituted into template placeholders
type Dimensions struct {
	Subjects []string `json:"subjects"`
	Grades   []int    `json:"grades"`
	Places   []string `json:"places"`
}

// ConfigError reports a malformed template discovered at load time, before
// any external calls are made.
type ConfigError struct {
	Pattern string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("taxonomy config error in template %q: %s", e.Pattern, e.Message)
}

// validate rejects templates whose placeholders cannot be resolved against
// the supplied dimensions, and templates containing unknown placeholders.
func validate(templates []Template, dims Dimensions) error {
	for _, tpl := range templates {
		if !tpl.Category.Valid() {
			return &ConfigError{Pattern: tpl.Pattern, Message: fmt.Sprintf("unknown category %q", tpl.Category)}
		}
		rest := tpl.Pattern
		for {
			open := strings.Index(rest, "{")
			if open < 0 {
				break
			}
			closing := strings.Index(rest[open:], "}")
			if closing < 0 {
				return &ConfigError{Pattern: tpl.Pattern, Message: "unterminated placeholder"}
			}
			placeholder := rest[open : open+closing+1]
			switch placeholder {
			case placeholderSubject:
				if len(dims.Subjects) == 0 {
					return &ConfigError{Pattern: tpl.Pattern, Message: "template uses {subject} but no subjects supplied"}
				}
			case placeholderGrade:
				if len(dims.Grades) == 0 {
					return &ConfigError{Pattern: tpl.Pattern, Message: "template uses {grade} but no grades supplied"}
				}
			case placeholderPlace:
				if len(dims.Places) == 0 {
					return &ConfigError{Pattern: tpl.Pattern, Message: "template uses {place} but no places supplied"}
				}
			default:
				return &ConfigError{Pattern: tpl.Pattern, Message: fmt.Sprintf("unresolvable placeholder %s", placeholder)}
			}
			rest = rest[open+closing+1:]
		}
	}
	return nil
}

// Expand produces the ordered keyword candidates for one generation run.
// Output order is deterministic: template order, then subject order, then
// grade order, then place order. Two runs over the same inputs produce the
// same sequence, which is what makes slug allocation reproducible.
func Expand(templates []Template, dims Dimensions) ([]types.KeywordRecord, error) {
	if err := validate(templates, dims); err != nil {
		return nil, err
	}

	var records []types.KeywordRecord
	for _, tpl := range templates {
		usesSubject := strings.Contains(tpl.Pattern, placeholderSubject)
		usesGrade := strings.Contains(tpl.Pattern, placeholderGrade)
		usesPlace := strings.Contains(tpl.Pattern, placeholderPlace)

		// Absent placeholders get a single zero-value pass so the loop
		// structure stays uniform across template shapes.
		subjects := dims.Subjects
		if !usesSubject {
			subjects = []string{""}
		}
		grades := dims.Grades
		if !usesGrade {
			grades = []int{0}
		}
		places := dims.Places
		if !usesPlace {
			places = []string{""}
		}

		for _, subject := range subjects {
			for _, grade := range grades {
				for _, place := range places {
					keyword := tpl.Pattern
					subs := types.Substitutions{}
					if usesSubject {
						keyword = strings.ReplaceAll(keyword, placeholderSubject, strings.ToLower(subject))
						subs.Subject = subject
					}
					if usesGrade {
						keyword = strings.ReplaceAll(keyword, placeholderGrade, strconv.Itoa(grade))
						subs.Grade = grade
					}
					if usesPlace {
						keyword = strings.ReplaceAll(keyword, placeholderPlace, strings.ToLower(place))
						subs.Place = place
					}
					records = append(records, types.KeywordRecord{
						Keyword:       keyword,
						Category:      tpl.Category,
						Substitutions: subs,
						PriorityClass: tpl.PriorityClass,
					})
				}
			}
		}
	}
	return records, nil
}
