package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/assocweb/ingest/pkg/domain"
)

var typeLabels = map[domain.EventType]string{
	domain.EventFair:     "Fair",
	domain.EventTraining: "Training",
	domain.EventProject:  "Project",
	domain.EventHoliday:  "Holiday",
}

const subjectTmpl = `{{if .SiteName}}[{{.SiteName}}] {{end}}{{.Label}} in {{.DaysAhead}} days: {{.Event.Title}}`

const bodyTmpl = `<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #222;">
<p>Dear {{if .Recipient.Name}}{{.Recipient.Name}}{{else}}member{{end}},</p>
<p>This is a reminder that the following {{.LabelLower}} starts in {{.DaysAhead}} days.</p>
<h2 style="margin-bottom: 4px;">{{.Event.Title}}</h2>
<p><strong>Date:</strong> {{.Event.Date.Format "02.01.2006"}}{{with .Event.EndDate}} - {{.Format "02.01.2006"}}{{end}}</p>
{{- if .Event.Location}}
<p><strong>Location:</strong> {{.Event.Location}}</p>
{{- end}}
{{- if .Event.Description}}
<p>{{.Event.Description}}</p>
{{- end}}
<p style="color: #888; font-size: 12px;">{{if .SiteName}}{{.SiteName}}{{else}}Association{{end}} event notifications</p>
</body></html>
`

var (
	subjectTemplate = texttemplate.Must(texttemplate.New("subject").Parse(subjectTmpl))
	bodyTemplate    = htmltemplate.Must(htmltemplate.New("body").Parse(bodyTmpl))
)

type messageData struct {
	Event      domain.NotificationEvent
	Recipient  domain.Recipient
	SiteName   string
	Label      string
	LabelLower string
	DaysAhead  int
}

// render builds the message of event for recipient
func render(ev domain.NotificationEvent, rcp domain.Recipient, siteName string, daysAhead int) (Message, error) {
	label := typeLabels[ev.Type]
	if label == "" {
		label = "Event"
	}
	data := messageData{Event: ev, Recipient: rcp, SiteName: siteName, Label: label, LabelLower: strings.ToLower(label), DaysAhead: daysAhead}

	var subj, body bytes.Buffer
	if err := subjectTemplate.Execute(&subj, data); err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render body: %w", err)
	}
	return Message{To: rcp.Email, Subject: strings.TrimSpace(subj.String()), Body: body.String()}, nil
}
