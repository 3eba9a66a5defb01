package inbox

import (
	"regexp"
	"strings"
)

// maxSubjectLen bounds the title written to the store.
const maxSubjectLen = 200

var (
	styleBlockRe = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	brRe         = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	blankRunsRe  = regexp.MustCompile(`\n{3,}`)
)

// sanitizeSubject trims the subject and substitutes a placeholder for an
// empty one, truncating to the store's title limit.
func sanitizeSubject(subject string) string {
	trimmed := strings.TrimSpace(subject)
	if trimmed == "" {
		return "(no subject)"
	}
	if runes := []rune(trimmed); len(runes) > maxSubjectLen {
		return string(runes[:maxSubjectLen])
	}
	return trimmed
}

// stripHTMLToText reduces an HTML body to readable plain text: style and
// script blocks removed, <br> turned into newlines, remaining tags
// dropped, common entities decoded, and runs of blank lines collapsed.
func stripHTMLToText(html string) string {
	text := styleBlockRe.ReplaceAllString(html, "")
	text = scriptRe.ReplaceAllString(text, "")
	text = brRe.ReplaceAllString(text, "\n")
	text = tagRe.ReplaceAllString(text, "")
	text = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	).Replace(text)
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// buildRawText appends a metadata trailer to the captured body so the
// provenance of an item survives in the store.
func buildRawText(body, from, messageID, receivedISO string) string {
	if from == "" {
		from = "-"
	}
	if messageID == "" {
		messageID = "-"
	}
	lines := []string{
		strings.TrimSpace(body),
		"",
		"---",
		"from: " + from,
		"received_at: " + receivedISO,
		"message-id: " + messageID,
	}
	return strings.Join(lines, "\n")
}
