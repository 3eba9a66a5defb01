package notion

import (
	"encoding/json"
	"time"
)

// Page is the subset of a Notion page the service reads and writes.
type Page struct {
	ID         string     `json:"id"`
	Archived   bool       `json:"archived"`
	Properties Properties `json:"properties"`
}

// Properties maps property names to values.
type Properties map[string]Property

// Property carries exactly one populated value, depending on the property
// type in the database schema.
type Property struct {
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Select   *Select    `json:"select,omitempty"`
	Date     *Date      `json:"date,omitempty"`
	URL      *string    `json:"url,omitempty"`

	// ClearDate marshals the property as {"date": null}, which unsets a
	// date on patch. Omitting the date key would leave it unchanged.
	ClearDate bool `json:"-"`
}

func (p Property) MarshalJSON() ([]byte, error) {
	if p.ClearDate {
		return []byte(`{"date":null}`), nil
	}
	// omitempty drops empty slices, but an empty run list is meaningful:
	// it clears the rich text property on patch.
	if p.RichText != nil && len(p.RichText) == 0 {
		return []byte(`{"rich_text":[]}`), nil
	}
	type plain Property
	return json.Marshal(plain(p))
}

// RichText is one run of text. The API returns plain_text; requests carry
// only the nested text.content.
type RichText struct {
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
}

// Text is the writable content of a rich text run.
type Text struct {
	Content string `json:"content"`
}

// Select is a select property value.
type Select struct {
	Name string `json:"name"`
}

// Date is a date property value. Start is either a civil date
// ("2025-03-10") or an RFC 3339 timestamp.
type Date struct {
	Start string `json:"start"`
}

// QueryRequest is the body of a database query call.
type QueryRequest struct {
	PageSize int    `json:"page_size,omitempty"`
	Filter   Filter `json:"filter,omitempty"`
	Sorts    []Sort `json:"sorts,omitempty"`
}

// Filter is a Notion filter tree. The API's filter grammar is open-ended;
// the helpers below cover the shapes this service uses.
type Filter map[string]any

// Sort orders query results by a property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// PropFilter builds a single-property condition, e.g.
// PropFilter("Status", "select", map[string]any{"equals": "Do"}).
func PropFilter(property, kind string, condition any) Filter {
	return Filter{"property": property, kind: condition}
}

// OrFilter combines conditions with a logical OR.
func OrFilter(filters ...Filter) Filter {
	return Filter{"or": filters}
}

// AndFilter combines conditions with a logical AND.
func AndFilter(filters ...Filter) Filter {
	return Filter{"and": filters}
}

// --- property builders -----------------------------------------------------

// TitleProp builds a title property with a single run.
func TitleProp(s string) Property {
	return Property{Title: []RichText{{Text: &Text{Content: s}}}}
}

// RichTextProp builds a rich text property with a single run. An empty
// string produces an empty run list, which clears the property on patch.
func RichTextProp(s string) Property {
	if s == "" {
		return Property{RichText: []RichText{}}
	}
	return Property{RichText: []RichText{{Text: &Text{Content: s}}}}
}

// ChunkedRichTextProp splits long text into runs of at most chunkSize
// characters. The API rejects single runs above 2000 characters. Splitting
// happens on rune boundaries so a multibyte character never straddles runs.
func ChunkedRichTextProp(s string, chunkSize int) Property {
	runs := []RichText{}
	runes := []rune(s)
	for len(runes) > chunkSize {
		runs = append(runs, RichText{Text: &Text{Content: string(runes[:chunkSize])}})
		runes = runes[chunkSize:]
	}
	if len(runes) > 0 {
		runs = append(runs, RichText{Text: &Text{Content: string(runes)}})
	}
	return Property{RichText: runs}
}

// SelectProp builds a select property value.
func SelectProp(name string) Property {
	return Property{Select: &Select{Name: name}}
}

// DateProp builds a date property from a timestamp.
func DateProp(t time.Time) Property {
	return Property{Date: &Date{Start: t.UTC().Format(time.RFC3339)}}
}

// NullDateProp builds the explicit null that unsets a date on patch.
func NullDateProp() Property {
	return Property{ClearDate: true}
}

// URLProp builds a URL property value.
func URLProp(u string) Property {
	return Property{URL: &u}
}

// --- accessors -------------------------------------------------------------

// TitleText returns the concatenated plain text of a title property, or ""
// if the property is absent.
func (p Page) TitleText(name string) string {
	return joinRuns(p.Properties[name].Title)
}

// RichTextValue returns the concatenated plain text of a rich text
// property, or "" if absent or empty.
func (p Page) RichTextValue(name string) string {
	return joinRuns(p.Properties[name].RichText)
}

// SelectValue returns the select option name, or "" if unset.
func (p Page) SelectValue(name string) string {
	if s := p.Properties[name].Select; s != nil {
		return s.Name
	}
	return ""
}

// DateValue parses a date property. Returns nil when unset or unparsable.
func (p Page) DateValue(name string) *time.Time {
	d := p.Properties[name].Date
	if d == nil || d.Start == "" {
		return nil
	}
	return parseDateStart(d.Start)
}

// URLValue returns the URL property value, or "" if unset.
func (p Page) URLValue(name string) string {
	if u := p.Properties[name].URL; u != nil {
		return *u
	}
	return ""
}

func joinRuns(runs []RichText) string {
	var out string
	for _, r := range runs {
		if r.PlainText != "" {
			out += r.PlainText
		} else if r.Text != nil {
			out += r.Text.Content
		}
	}
	return out
}

// parseDateStart accepts both RFC 3339 timestamps and civil dates.
func parseDateStart(s string) *time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
