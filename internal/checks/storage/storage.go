// Package storage evaluates per-storage usage against thresholds.
package storage

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/corex-mon/check-pve/internal/check"
	"github.com/corex-mon/check-pve/internal/units"
)

// Name is the subcommand name.
const Name = "storage"

// Options configure the storage check. A non-empty Include list takes
// exclusive precedence: Ignore is not consulted at all.
type Options struct {
	Thresholds check.Thresholds
	Ignore     []string
	Include    []string
}

type entry struct {
	Storage string `json:"storage"`
	Enabled int    `json:"enabled"`
	Active  int    `json:"active"`
	Type    string `json:"type"`
	Used    int64  `json:"used"`
	Total   int64  `json:"total"`
}

// Check grades every selected storage. Disabled entries produce no finding,
// inactive ones warn, and the rest get the three-way threshold split on
// their used percentage.
func Check(data []byte, opts Options) []check.Finding {
	var list []entry
	if err := json.Unmarshal(data, &list); err != nil {
		return check.Unknown("Could not parse storage list: " + err.Error())
	}

	var findings []check.Finding
	for _, st := range list {
		if !selected(st.Storage, opts) {
			continue
		}
		if st.Enabled != 1 {
			continue
		}
		if st.Active != 1 {
			findings = append(findings, check.Finding{
				Status:  check.StatusWarning,
				Message: fmt.Sprintf("%s disk is not active!", st.Storage),
			})
			continue
		}
		findings = append(findings, grade(st, opts.Thresholds))
	}
	return findings
}

func grade(st entry, th check.Thresholds) check.Finding {
	var percent float64
	if st.Total == 0 {
		percent = units.Round(float64(st.Used)*100, 2)
	} else {
		percent = units.Round(float64(st.Used)/float64(st.Total)*100, 2)
	}

	// The message shows used and total in their individually chosen units;
	// the perfdata block uses one shared unit so the graphing side gets
	// comparable numbers.
	used, usedUnit := units.Scale(st.Used)
	total, totalUnit := units.Scale(st.Total)
	commonUsed, commonTotal, commonUnit := units.ScalePair(st.Used, st.Total)
	warnScaled := units.Round(total/100*float64(th.Warning), 2)
	critScaled := units.Round(total/100*float64(th.Critical), 2)

	status := check.StatusOK
	switch {
	case float64(th.Critical) <= percent:
		status = check.StatusCritical
	case float64(th.Warning) <= percent:
		status = check.StatusWarning
	}

	return check.Finding{
		Status: status,
		Message: fmt.Sprintf("%s disk usage (type: %s) is %s %% (%s %s / %s %s).",
			st.Storage, st.Type, units.Ftoa(percent),
			units.Ftoa(used), usedUnit, units.Ftoa(total), totalUnit),
		Metrics: []check.Metric{{
			Label: st.Storage,
			Value: units.Ftoa(commonUsed) + commonUnit,
			Warn:  units.Ftoa(warnScaled),
			Crit:  units.Ftoa(critScaled),
			Min:   "0",
			Max:   units.Ftoa(commonTotal),
		}},
	}
}

func selected(name string, opts Options) bool {
	if len(opts.Include) > 0 {
		return slices.Contains(opts.Include, name)
	}
	return !slices.Contains(opts.Ignore, name)
}
