package prompt

import (
	"context"
	"fmt"
	"strings"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

// Choice is one selectable option. Key is what the operator types at the
// prompt, Keyword is what a command-line flag carries.
type Choice[T any] struct {
	Key     string
	Keyword string
	Label   string
	Value   T
}

// Menu is a closed set of choices for one question.
type Menu[T any] struct {
	// Field names the flag or setting, used in errors and verbose output.
	Field   string
	Title   string
	Warning string
	Hint    string
	Choices []Choice[T]
}

// byKeyword matches command-line values, which are case-sensitive.
func (m Menu[T]) byKeyword(v string) (Choice[T], bool) {
	for _, c := range m.Choices {
		if c.Keyword != "" && c.Keyword == v {
			return c, true
		}
	}
	return Choice[T]{}, false
}

// match resolves an interactive answer: a key or any casing of a keyword.
func (m Menu[T]) match(v string) (Choice[T], bool) {
	for _, c := range m.Choices {
		if c.Key == v || (c.Keyword != "" && strings.EqualFold(c.Keyword, v)) {
			return c, true
		}
	}
	return Choice[T]{}, false
}

// Keywords lists the accepted command-line values.
func (m Menu[T]) Keywords() []string {
	out := make([]string, 0, len(m.Choices))
	for _, c := range m.Choices {
		if c.Keyword != "" {
			out = append(out, c.Keyword)
		}
	}
	return out
}

func (m Menu[T]) keys() []string {
	out := make([]string, 0, len(m.Choices))
	for _, c := range m.Choices {
		out = append(out, c.Key)
	}
	return out
}

// Parse maps a command-line value to a choice without any interaction.
func (m Menu[T]) Parse(v string) (T, error) {
	c, ok := m.byKeyword(v)
	if !ok {
		var zero T
		return zero, errs.NewValidationError(m.Field,
			fmt.Sprintf("invalid %s %q, accepted values: %s", m.Field, v, strings.Join(m.Keywords(), ", ")), v)
	}
	return c.Value, nil
}

func (m Menu[T]) render() string {
	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(TitleStyle.Render(m.Title))
	s.WriteString("\n")
	if m.Warning != "" {
		s.WriteString("\n")
		s.WriteString(WarningStyle.Render("⚠️  " + m.Warning))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	for _, c := range m.Choices {
		s.WriteString(TitleStyle.Render(fmt.Sprintf("    %s) %s", c.Key, c.Label)))
		s.WriteString("\n")
	}
	if m.Hint != "" {
		s.WriteString("\n")
		s.WriteString(HintStyle.Render("💡 " + m.Hint))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	return s.String()
}

// Select resolves a menu. A non-empty preset comes from a flag and is either
// accepted as is or rejected with a validation error; it never falls back to
// the prompt. Without a preset the operator is asked until a valid answer or
// "exit" is entered. Cancelling ctx while waiting returns errs.ErrInterrupted.
func Select[T any](ctx context.Context, p *Prompter, m Menu[T], preset string) (T, error) {
	if preset != "" {
		c, ok := m.byKeyword(preset)
		if !ok {
			var zero T
			_, err := m.Parse(preset)
			return zero, err
		}
		resolved(p, m, c)
		return c.Value, nil
	}

	fmt.Fprint(p.out, m.render())
	for {
		line, err := p.readLine(ctx, "Enter your choice, or 'exit' to quit: ")
		if err != nil {
			var zero T
			return zero, err
		}
		if c, ok := m.match(line); ok {
			resolved(p, m, c)
			return c.Value, nil
		}
		p.Error(fmt.Sprintf("Invalid input. Please choose a valid option. Accepted values: [ %s ]",
			strings.Join(m.keys(), " , ")))
	}
}

func resolved[T any](p *Prompter, m Menu[T], c Choice[T]) {
	p.clear()
	if p.verbose {
		name := c.Keyword
		if name == "" {
			name = c.Label
		}
		fmt.Fprintf(p.out, "Chosen %s: %s\n", m.Field, name)
	}
}

// YesNo builds a two-option menu answering true for the first option.
// Keywords "yes" and "no" let config files and tests preset the answer.
func YesNo(field, title, yes, no, hint string) Menu[bool] {
	return Menu[bool]{
		Field: field,
		Title: title,
		Hint:  hint,
		Choices: []Choice[bool]{
			{Key: "1", Keyword: "yes", Label: yes, Value: true},
			{Key: "2", Keyword: "no", Label: no, Value: false},
		},
	}
}
