package opsgenie

import "github.com/netspec/prtg-reporter/internal/config"

// Responder kinds accepted by the Opsgenie alert API
const (
	ResponderTeam       = "team"
	ResponderUser       = "user"
	ResponderEscalation = "escalation"
	ResponderSchedule   = "schedule"
)

// Responder is an alert responder reference
type Responder struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// BuildResponders expands responder ids into responder objects: teams, then
// users, escalations and schedules, each in configured order. Empty ids are
// skipped.
func BuildResponders(r config.Responders) []Responder {
	responders := make([]Responder, 0,
		len(r.Teams)+len(r.Users)+len(r.Escalations)+len(r.Schedules))

	for _, group := range []struct {
		kind string
		ids  []string
	}{
		{ResponderTeam, r.Teams},
		{ResponderUser, r.Users},
		{ResponderEscalation, r.Escalations},
		{ResponderSchedule, r.Schedules},
	} {
		for _, id := range group.ids {
			if id == "" {
				continue
			}
			responders = append(responders, Responder{ID: id, Type: group.kind})
		}
	}

	return responders
}
