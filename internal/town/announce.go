package town

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	DefaultArrivalTemplate   = `{{ .UserName }} has arrived in {{ .TownName | default "town" }}`
	DefaultDepartureTemplate = `{{ .UserName }} has left`
)

// announceData is the data available to announcement templates.
type announceData struct {
	UserName string
	TownName string
}

// Announcer renders arrival and departure announcements from
// operator-supplied templates, broadcast as system chat messages.
type Announcer struct {
	townName string
	arrival  *template.Template
	depart   *template.Template
}

// NewAnnouncer parses the two announcement templates. Empty strings fall
// back to the defaults.
func NewAnnouncer(townName, arrivalTmpl, departTmpl string) (*Announcer, error) {
	if arrivalTmpl == "" {
		arrivalTmpl = DefaultArrivalTemplate
	}
	if departTmpl == "" {
		departTmpl = DefaultDepartureTemplate
	}

	arrival, err := template.New("arrival").Funcs(sprig.TxtFuncMap()).Parse(arrivalTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing arrival template: %w", err)
	}
	depart, err := template.New("departure").Funcs(sprig.TxtFuncMap()).Parse(departTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing departure template: %w", err)
	}

	return &Announcer{
		townName: townName,
		arrival:  arrival,
		depart:   depart,
	}, nil
}

// Arrival renders the arrival announcement for a user.
func (a *Announcer) Arrival(userName string) (string, error) {
	return a.render(a.arrival, userName)
}

// Departure renders the departure announcement for a user.
func (a *Announcer) Departure(userName string) (string, error) {
	return a.render(a.depart, userName)
}

func (a *Announcer) render(t *template.Template, userName string) (string, error) {
	var sb strings.Builder
	err := t.Execute(&sb, announceData{UserName: userName, TownName: a.townName})
	if err != nil {
		return "", fmt.Errorf("rendering %s announcement: %w", t.Name(), err)
	}
	return sb.String(), nil
}
