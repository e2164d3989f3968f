// Package services evaluates the state of the node's systemd services.
package services

import (
	"encoding/json"
	"fmt"

	"github.com/corex-mon/check-pve/internal/check"
)

// Name is the subcommand name.
const Name = "services"

type service struct {
	Name        string `json:"name"`
	Desc        string `json:"desc"`
	UnitState   string `json:"unit-state"`
	State       string `json:"state"`
	ActiveState string `json:"active-state"`
}

// Check reports a warning for every service that is neither running nor
// active. Units that do not exist on the node (unit-state "not-found") are
// skipped; PVE lists optional daemons like syslog that way.
func Check(data []byte) []check.Finding {
	var list []service
	if err := json.Unmarshal(data, &list); err != nil {
		return check.Unknown("Could not parse service list: " + err.Error())
	}

	var findings []check.Finding
	for _, s := range list {
		if (s.State != "running" || s.ActiveState != "active") && s.UnitState != "not-found" {
			findings = append(findings, check.Finding{
				Status:  check.StatusWarning,
				Message: fmt.Sprintf("%s (%s) is %s.", s.Desc, s.Name, s.State),
			})
		}
	}

	if len(findings) == 0 {
		findings = append(findings, check.Finding{
			Status:  check.StatusOK,
			Message: "All services are running.",
		})
	}
	return findings
}
