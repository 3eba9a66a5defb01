package rest

import (
	"html/template"
	"net/http"
)

// Pages served to humans clicking links in a mail client. Styles are
// inline because there is no asset pipeline behind these endpoints.

type pageView struct {
	Title   string
	Heading string
	Lines   []string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: -apple-system, Segoe UI, sans-serif; max-width: 520px; margin: 48px auto; color: #333;">
  <h2 style="margin-bottom: 8px;">{{.Heading}}</h2>
  {{range .Lines}}<p style="margin: 4px 0; color: #555;">{{.}}</p>
  {{end}}
</body>
</html>
`))

type confirmView struct {
	TaskName   string
	Status     string
	ActionPath string
	TaskID     string
	ExpiresAt  int64
	Signature  string
	Key        string
}

var confirmTemplate = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Confirm status change</title></head>
<body style="font-family: -apple-system, Segoe UI, sans-serif; max-width: 520px; margin: 48px auto; color: #333;">
  <h2 style="margin-bottom: 8px;">Move task to {{.Status}}?</h2>
  <p style="margin: 4px 0; color: #555;">{{.TaskName}}</p>
  <form method="POST" action="{{.ActionPath}}">
    <input type="hidden" name="task_id" value="{{.TaskID}}">
    <input type="hidden" name="to" value="{{.Status}}">
    <input type="hidden" name="exp" value="{{.ExpiresAt}}">
    <input type="hidden" name="sig" value="{{.Signature}}">
    {{if .Key}}<input type="hidden" name="key" value="{{.Key}}">
    {{end}}<button type="submit" style="margin-top: 16px; padding: 8px 24px; background: #2563eb; color: #fff; border: none; border-radius: 6px; font-size: 15px; cursor: pointer;">Confirm</button>
  </form>
</body>
</html>
`))

func writeHTML(w http.ResponseWriter, status int, tmpl *template.Template, view any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	tmpl.Execute(w, view) //nolint:errcheck
}

// writeHTMLError renders a service error as a human-readable page with
// the same status mapping the JSON endpoints use.
func writeHTMLError(w http.ResponseWriter, status int, message string) {
	writeHTML(w, status, pageTemplate, pageView{
		Title:   "Error",
		Heading: "Something went wrong",
		Lines:   []string{message},
	})
}
