// Package render turns a validated recipient into the subject and HTML body
// of a campaign email. Templates carry literal {field} tokens; nothing else in
// the file is interpreted, so arbitrary HTML and inline styling pass through
// untouched.
package render

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/allpackers/campaign/internal/models"
)

// ErrUnknownPlaceholder is wrapped by UnknownPlaceholderError for errors.Is
// checks.
var ErrUnknownPlaceholder = errors.New("unknown template placeholder")

// UnknownPlaceholderError identifies a {token} in the template that the
// renderer cannot supply. Construction fails on the first one found, before
// any recipient is processed.
type UnknownPlaceholderError struct {
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown template placeholder {%s}", e.Name)
}

func (e *UnknownPlaceholderError) Unwrap() error {
	return ErrUnknownPlaceholder
}

// placeholderPattern matches identifier-shaped {tokens}. Multi-word CSS blocks
// never match because colons and spaces break the identifier shape.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// knownPlaceholders is the set of tokens the renderer supplies. The recipient
// email addresses the envelope, not the body, so {email} is not among them.
var knownPlaceholders = map[string]struct{}{
	models.FieldName:            {},
	models.FieldTripName:        {},
	models.FieldTripDate:        {},
	models.FieldTripCost:        {},
	models.FieldTripDescription: {},
}

// Template is a campaign body template whose placeholders have all been
// verified against the recipient fields.
type Template struct {
	src string
}

// Load reads and validates the template file at path.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read template: %w", err)
	}
	return New(string(data))
}

// New validates that every placeholder in src is a recipient field.
func New(src string) (*Template, error) {
	for _, match := range placeholderPattern.FindAllStringSubmatch(src, -1) {
		if _, ok := knownPlaceholders[match[1]]; !ok {
			return nil, &UnknownPlaceholderError{Name: match[1]}
		}
	}
	return &Template{src: src}, nil
}

// RenderEmail produces the subject line and HTML body for one recipient.
func (t *Template) RenderEmail(r models.Recipient) (string, string, error) {
	body := strings.NewReplacer(
		"{"+models.FieldName+"}", r.Name,
		"{"+models.FieldTripName+"}", r.TripName,
		"{"+models.FieldTripDate+"}", r.TripDate,
		"{"+models.FieldTripCost+"}", FormatCost(r.TripCost),
		"{"+models.FieldTripDescription+"}", r.TripDescription,
	).Replace(t.src)

	return Subject(r), body, nil
}

// Subject builds the campaign subject line for a recipient.
func Subject(r models.Recipient) string {
	return fmt.Sprintf("Join Our %s – Your Adventure Awaits!", r.TripName)
}

var costPrinter = message.NewPrinter(language.English)

// FormatCost renders a trip cost with grouped thousands and exactly two
// decimal places: 1500 becomes "1,500.00".
func FormatCost(cost float64) string {
	return costPrinter.Sprint(number.Decimal(cost,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
