// Package node evaluates the node status payload: the cpu, memory, swap
// and pveversion checks all read from nodes/{node}/status.
package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/corex-mon/check-pve/internal/check"
	"github.com/corex-mon/check-pve/internal/units"
)

// Subcommand names served by this package.
const (
	NameCPU        = "cpu"
	NameMemory     = "memory"
	NameSwap       = "swap"
	NamePVEVersion = "pveversion"
)

// CheckCPU grades CPU usage against the thresholds. Usage at or above the
// critical threshold is critical, at or above warning is a warning.
func CheckCPU(data []byte, th check.Thresholds) []check.Finding {
	var payload struct {
		CPU float64 `json:"cpu"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return check.Unknown("Could not parse node status: " + err.Error())
	}
	usage := units.Round(payload.CPU*100, 2)

	status := check.StatusOK
	switch {
	case float64(th.Critical) <= usage:
		status = check.StatusCritical
	case float64(th.Warning) <= usage:
		status = check.StatusWarning
	}

	return []check.Finding{{
		Status:  status,
		Message: fmt.Sprintf("CPU usage is %s %%.", units.Ftoa(usage)),
		Metrics: []check.Metric{{
			Label: "usage",
			Value: units.Ftoa(usage) + "%",
			Warn:  strconv.Itoa(th.Warning),
			Crit:  strconv.Itoa(th.Critical),
			Min:   "0",
			Max:   "100",
		}},
	}}
}

// CheckMemory grades memory or swap usage; kind is NameMemory or NameSwap.
// Values are reported in GB and the percentage is computed from the
// rounded GB values. A zero total falls back to used*100 so an absent swap
// device never divides by zero.
func CheckMemory(data []byte, kind string, th check.Thresholds) []check.Finding {
	var payload struct {
		Memory usedTotal `json:"memory"`
		Swap   usedTotal `json:"swap"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return check.Unknown("Could not parse node status: " + err.Error())
	}

	section := payload.Memory
	if kind == NameSwap {
		section = payload.Swap
	}

	used := units.Round(float64(section.Used)/(1<<30), 1)
	total := units.Round(float64(section.Total)/(1<<30), 1)
	warnGB := units.Round(total/100*float64(th.Warning), 2)
	critGB := units.Round(total/100*float64(th.Critical), 2)

	var percent float64
	if total == 0 {
		percent = units.Round(used*100, 2)
	} else {
		percent = units.Round(used/total*100, 2)
	}

	status := check.StatusOK
	switch {
	case float64(th.Critical) <= percent:
		status = check.StatusCritical
	case float64(th.Warning) <= percent:
		status = check.StatusWarning
	}

	return []check.Finding{{
		Status: status,
		Message: fmt.Sprintf("%s usage is %s %% (%s GB / %s GB)!",
			kind, units.Ftoa(percent), units.Ftoa(used), units.Ftoa(total)),
		Metrics: []check.Metric{{
			Label: "usage",
			Value: units.Ftoa(used) + "GB",
			Warn:  units.Ftoa(warnGB),
			Crit:  units.Ftoa(critGB),
			Min:   "0",
			Max:   units.Ftoa(total),
		}},
	}}
}

// CheckVersion reports the installed PVE package and version. Always OK.
func CheckVersion(data []byte) []check.Finding {
	var payload struct {
		PVEVersion string `json:"pveversion"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return check.Unknown("Could not parse node status: " + err.Error())
	}

	fields := strings.Split(payload.PVEVersion, "/")
	if len(fields) < 2 {
		return check.Unknown("Could not parse node status: unexpected pveversion value " + strconv.Quote(payload.PVEVersion))
	}
	return []check.Finding{{
		Status:  check.StatusOK,
		Message: fields[0] + "/" + fields[1],
	}}
}

type usedTotal struct {
	Used  int64 `json:"used"`
	Total int64 `json:"total"`
}
