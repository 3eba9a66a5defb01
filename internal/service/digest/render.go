package digest

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// confirmTargets are the statuses offered as action links on each digest
// item. The item's current status is filtered out per task.
var confirmTargets = []domain.Status{
	domain.StatusDo,
	domain.StatusThinking,
	domain.StatusWaiting,
	domain.StatusDone,
	domain.StatusDrop,
	domain.StatusSomeday,
}

// Mail is a rendered digest: subject plus HTML body and plain-text
// alternative.
type Mail struct {
	Subject string
	HTML    string
	Text    string
}

type actionLink struct {
	Label string
	URL   string
}

type itemView struct {
	Index    int
	Name     string
	Priority string
	Since    string
	Elapsed  string
	Links    []actionLink
}

type sectionView struct {
	Title      string
	SinceLabel string
	Items      []itemView
}

type mailView struct {
	Header   string
	Sections []sectionView
}

var mailTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, sans-serif; background:#f7f7f7; padding:16px;">
  <h2 style="margin-top:0;">Tasks Digest</h2>
  <p style="color:#555;">{{.Header}}</p>
{{- range .Sections}}
  <h3 style="margin-top:24px;">{{.Title}} ({{len .Items}})</h3>
{{- if not .Items}}
  <p style="color:#666;">No tasks.</p>
{{- end}}
{{- $sinceLabel := .SinceLabel}}
{{- range .Items}}
  <div style="border:1px solid #e0e0e0; border-radius:12px; background:#fff; padding:14px; margin:12px 0;">
    <div style="font-weight:600; font-size:16px; margin-bottom:6px;">{{.Index}}. {{.Name}}</div>
    <div style="font-size:13px; color:#555; margin-bottom:8px;">Priority: {{.Priority}} / {{$sinceLabel}}: {{.Since}} / Elapsed: {{.Elapsed}} days</div>
    <div>
{{- range .Links}}
      <a href="{{.URL}}" style="display:inline-block; margin:6px 8px 0 0; padding:8px 12px; border-radius:8px; background:#1a73e8; color:#fff; text-decoration:none; font-size:14px;">{{.Label}}</a>
{{- end}}
    </div>
  </div>
{{- end}}
{{- end}}
</body>
</html>
`))

// Render turns a computed digest into a mail with per-task confirm links.
func (s *Service) Render(d *Digest) (*Mail, error) {
	header := fmt.Sprintf("Today: %s / Do: %d", d.Today, len(d.DoItems))
	subject := fmt.Sprintf("Tasks Digest %s — Do: %d", d.Today, len(d.DoItems))
	if d.IncludeSomeday {
		header += fmt.Sprintf(" / Someday: %d", len(d.SomedayItems))
		subject += fmt.Sprintf(", Someday: %d", len(d.SomedayItems))
	}

	view := mailView{
		Header: header,
		Sections: []sectionView{
			s.sectionView("Do", "Since Do", d, d.DoItems, func(t domain.Task) *time.Time {
				return t.SinceDoAt
			}),
		},
	}
	if d.IncludeSomeday {
		view.Sections = append(view.Sections,
			s.sectionView("Someday", "Since Someday", d, d.SomedayItems, func(t domain.Task) *time.Time {
				return t.SinceSomedayAt
			}),
		)
	}

	var html strings.Builder
	if err := mailTemplate.Execute(&html, view); err != nil {
		return nil, fmt.Errorf("render digest mail: %w", err)
	}

	return &Mail{
		Subject: subject,
		HTML:    html.String(),
		Text:    renderText(view),
	}, nil
}

func (s *Service) sectionView(title, sinceLabel string, d *Digest, tasks []domain.Task, since func(domain.Task) *time.Time) sectionView {
	items := make([]itemView, 0, len(tasks))
	for i, t := range tasks {
		sinceStr := "-"
		elapsed := "-"
		if v := since(t); v != nil {
			sinceStr = civilDate(*v)
			if days := elapsedCivilDays(d.GeneratedAt, v); days >= 0 {
				elapsed = strconv.Itoa(days)
			}
		}

		items = append(items, itemView{
			Index:    i + 1,
			Name:     t.Name,
			Priority: t.Priority,
			Since:    sinceStr,
			Elapsed:  elapsed,
			Links:    s.taskLinks(t),
		})
	}
	return sectionView{Title: title, SinceLabel: sinceLabel, Items: items}
}

func (s *Service) taskLinks(t domain.Task) []actionLink {
	links := make([]actionLink, 0, len(confirmTargets))
	for _, target := range confirmTargets {
		if target == t.Status {
			continue
		}
		u := s.baseURL + "/confirm?task_id=" + url.QueryEscape(t.ID) +
			"&to=" + url.QueryEscape(target.String())
		if s.sharedKey != "" {
			u += "&key=" + url.QueryEscape(s.sharedKey)
		}
		links = append(links, actionLink{Label: target.String(), URL: u})
	}
	return links
}

func renderText(view mailView) string {
	var b strings.Builder
	b.WriteString("Tasks Digest\n")
	b.WriteString(view.Header + "\n")
	for _, sec := range view.Sections {
		fmt.Fprintf(&b, "\n%s (%d)\n", sec.Title, len(sec.Items))
		if len(sec.Items) == 0 {
			b.WriteString("  no tasks\n")
			continue
		}
		for _, item := range sec.Items {
			fmt.Fprintf(&b, "  %d. %s (priority %s, %s %s, elapsed %s days)\n",
				item.Index, item.Name, item.Priority, sec.SinceLabel, item.Since, item.Elapsed)
		}
	}
	return b.String()
}
