package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/auth"
	"github.com/pixil98/go-town/internal/town"
)

type TownConfig struct {
	Name string `json:"name"`

	// Password gates joins; empty means the town is public.
	Password string `json:"password,omitempty"`

	ArrivalTemplate   string `json:"arrival_template,omitempty"`
	DepartureTemplate string `json:"departure_template,omitempty"`
}

func (c *TownConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	// Catch template syntax errors at startup rather than on first join.
	_, err := town.NewAnnouncer(c.Name, c.ArrivalTemplate, c.DepartureTemplate)
	if err != nil {
		el.Add(err)
	}

	return el.Err()
}

func (c *TownConfig) BuildAnnouncer() (*town.Announcer, error) {
	return town.NewAnnouncer(c.Name, c.ArrivalTemplate, c.DepartureTemplate)
}

func (c *TownConfig) BuildGatekeeper() (*auth.Gatekeeper, error) {
	return auth.NewGatekeeper(c.Password)
}
