package service

import (
	"fmt"
	htmlTemplate "html/template"
	"strings"
	textTemplate "text/template"

	appointmentModel "medsched/internal/domains/appointment/model"
	"medsched/internal/domains/report/model"
	roomModel "medsched/internal/domains/room/model"
)

// StatusData is the snapshot a renderer turns into a report body.
type StatusData struct {
	GeneratedAt    string
	TotalRooms     int
	AvailableRooms int
	Rooms          []roomModel.Room
	Appointments   []appointmentModel.Appointment
	CountsByStatus map[string]int
}

// Renderer turns a status snapshot into a report body in one output format.
type Renderer interface {
	Render(data StatusData) (string, error)
	Format() model.Format
}

// NewRenderer picks the renderer for the requested format.
func NewRenderer(format model.Format) (Renderer, error) {
	switch format {
	case model.FormatText:
		return textRenderer{}, nil
	case model.FormatHTML:
		return htmlRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %q", format)
	}
}

var textTmpl = textTemplate.Must(textTemplate.New("status").Parse(
	`SCHEDULING STATUS REPORT
Generated: {{.GeneratedAt}}

ROOMS ({{.AvailableRooms}}/{{.TotalRooms}} available)
{{- range .Rooms}}
  [{{.ID}}] {{.Name}} | capacity {{.Capacity}} | {{.Category}} | {{if .Available}}available{{else}}occupied{{end}}
{{- end}}

APPOINTMENTS BY STATUS
{{- range $status, $count := .CountsByStatus}}
  {{$status}}: {{$count}}
{{- end}}

APPOINTMENTS
{{- range .Appointments}}
  [{{.ID}}] {{.Datetime.Format "2006-01-02 15:04"}} | room {{.RoomID}} | patient {{.PatientRef}} | provider {{.ProviderRef}} | {{.Status}}
{{- end}}
`))

type textRenderer struct{}

func (textRenderer) Format() model.Format {
	return model.FormatText
}

func (textRenderer) Render(data StatusData) (string, error) {
	var sb strings.Builder
	if err := textTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render text report: %w", err)
	}

	return sb.String(), nil
}

var htmlTmpl = htmlTemplate.Must(htmlTemplate.New("status").Parse(
	`<!DOCTYPE html>
<html>
<head><title>Scheduling Status Report</title></head>
<body>
<h1>Scheduling Status Report</h1>
<p>Generated: {{.GeneratedAt}}</p>
<h2>Rooms ({{.AvailableRooms}}/{{.TotalRooms}} available)</h2>
<table border="1">
<tr><th>ID</th><th>Name</th><th>Capacity</th><th>Category</th><th>State</th></tr>
{{- range .Rooms}}
<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Capacity}}</td><td>{{.Category}}</td><td>{{if .Available}}available{{else}}occupied{{end}}</td></tr>
{{- end}}
</table>
<h2>Appointments by Status</h2>
<ul>
{{- range $status, $count := .CountsByStatus}}
<li>{{$status}}: {{$count}}</li>
{{- end}}
</ul>
<h2>Appointments</h2>
<table border="1">
<tr><th>ID</th><th>When</th><th>Room</th><th>Patient</th><th>Provider</th><th>Status</th></tr>
{{- range .Appointments}}
<tr><td>{{.ID}}</td><td>{{.Datetime.Format "2006-01-02 15:04"}}</td><td>{{.RoomID}}</td><td>{{.PatientRef}}</td><td>{{.ProviderRef}}</td><td>{{.Status}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

type htmlRenderer struct{}

func (htmlRenderer) Format() model.Format {
	return model.FormatHTML
}

func (htmlRenderer) Render(data StatusData) (string, error) {
	var sb strings.Builder
	if err := htmlTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render html report: %w", err)
	}

	return sb.String(), nil
}
