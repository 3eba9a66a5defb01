package notion

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRichTextProp_EmptyClearsProperty(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(RichTextProp(""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"rich_text":[]}` {
		t.Fatalf("empty rich text must serialize as an empty run list, got %s", got)
	}
}

func TestNullDateProp_MarshalsExplicitNull(t *testing.T) {
	t.Parallel()

	got, err := json.Marshal(NullDateProp())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"date":null}` {
		t.Fatalf("clearing a date must serialize as {\"date\":null}, got %s", got)
	}
}

func TestChunkedRichTextProp(t *testing.T) {
	t.Parallel()

	prop := ChunkedRichTextProp(strings.Repeat("x", 4000), 1800)
	if len(prop.RichText) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(prop.RichText))
	}
	if got := len(prop.RichText[0].Text.Content); got != 1800 {
		t.Errorf("first run length: %d", got)
	}
	if got := len(prop.RichText[2].Text.Content); got != 400 {
		t.Errorf("last run length: %d", got)
	}

	// Multibyte characters count as single characters per run.
	wide := ChunkedRichTextProp(strings.Repeat("あ", 1801), 1800)
	if len(wide.RichText) != 2 {
		t.Fatalf("expected 2 runs for 1801 runes, got %d", len(wide.RichText))
	}
	if got := []rune(wide.RichText[0].Text.Content); len(got) != 1800 {
		t.Errorf("first wide run: %d runes", len(got))
	}
}

func TestPage_Accessors(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": "p1",
		"properties": {
			"Name": {"title": [{"plain_text": "Buy "}, {"plain_text": "milk"}]},
			"Source": {"rich_text": [{"plain_text": "Email"}]},
			"Status": {"select": {"name": "Do"}},
			"Since Do": {"date": {"start": "2024-05-06T00:00:00Z"}},
			"Reminder Date": {"date": {"start": "2024-05-10"}},
			"Undo": {"url": "https://example.com/u"}
		}
	}`
	var page Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := page.TitleText("Name"); got != "Buy milk" {
		t.Errorf("title: %q", got)
	}
	if got := page.RichTextValue("Source"); got != "Email" {
		t.Errorf("rich text: %q", got)
	}
	if got := page.SelectValue("Status"); got != "Do" {
		t.Errorf("select: %q", got)
	}
	if got := page.URLValue("Undo"); got != "https://example.com/u" {
		t.Errorf("url: %q", got)
	}

	since := page.DateValue("Since Do")
	if since == nil || !since.Equal(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp date: %v", since)
	}
	reminder := page.DateValue("Reminder Date")
	if reminder == nil || !reminder.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("civil date: %v", reminder)
	}
	if page.DateValue("Missing") != nil {
		t.Error("absent date must be nil")
	}
}
