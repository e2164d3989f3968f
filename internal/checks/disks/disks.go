// Package disks evaluates SMART health and wearout for each physical disk.
package disks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/corex-mon/check-pve/internal/check"
)

// Name is the subcommand name.
const Name = "disks_health"

type disk struct {
	Vendor  string `json:"vendor"`
	Model   string `json:"model"`
	Type    string `json:"type"`
	DevPath string `json:"devpath"`
	Health  string `json:"health"`
	// Wearout is a number for SSDs and the string "N/A" otherwise.
	Wearout any `json:"wearout"`
}

// Check grades every disk. Health values other than OK, PASSED and UNKNOWN
// mark the disk as failed. A numeric wearout between the thresholds
// (inclusive) is a warning, at or below critical it is critical; wearout
// counts down, so lower is worse. The OK baseline is emitted only when no
// disk is unhealthy.
func Check(data []byte, th check.Thresholds) []check.Finding {
	var list []disk
	if err := json.Unmarshal(data, &list); err != nil {
		return check.Unknown("Could not parse disk list: " + err.Error())
	}

	var findings []check.Finding
	for _, d := range list {
		vendor := strings.TrimSpace(d.Vendor)
		wearout, numeric := d.Wearout.(float64)
		switch {
		case d.Health != "OK" && d.Health != "PASSED" && d.Health != "UNKNOWN":
			findings = append(findings, check.Finding{
				Status: check.StatusWarning,
				Message: fmt.Sprintf("%s - %s type: %s on %s is failed: %s",
					vendor, d.Model, d.Type, d.DevPath, d.Health),
			})
		case numeric && wearout <= float64(th.Warning) && wearout >= float64(th.Critical):
			findings = append(findings, check.Finding{
				Status: check.StatusWarning,
				Message: fmt.Sprintf("%s - %s type: %s on %s has low wearout: %s",
					vendor, d.Model, d.Type, d.DevPath, formatWearout(wearout)),
			})
		case numeric && wearout <= float64(th.Critical):
			findings = append(findings, check.Finding{
				Status: check.StatusCritical,
				Message: fmt.Sprintf("%s - %s type: %s on %s has low wearout: %s",
					vendor, d.Model, d.Type, d.DevPath, formatWearout(wearout)),
			})
		}
	}

	if len(findings) == 0 {
		findings = append(findings, check.Finding{
			Status:  check.StatusOK,
			Message: "All disks are healthy.",
		})
	}
	return findings
}

func formatWearout(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
