// Package check defines the finding and reporting types shared by every
// subcommand.
package check

import (
	"fmt"
	"os"
	"strings"
)

// Status is the severity of a finding, ordered worst-last. The integer
// value doubles as the process exit code expected by the monitoring
// supervisor.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Code returns the process exit code for the status.
func (s Status) Code() int { return int(s) }

// Metric is one performance-data tuple appended after the message in the
// monitoring-plugin label=value;warn;crit;min;max convention. Fields are
// preformatted strings; empty warn/crit/max fields stay empty in the output.
type Metric struct {
	Label string
	Value string
	Warn  string
	Crit  string
	Min   string
	Max   string
}

func (m Metric) render() string {
	label := m.Label
	if strings.ContainsRune(label, ' ') {
		label = "'" + label + "'"
	}
	return fmt.Sprintf("%s=%s;%s;%s;%s;%s", label, m.Value, m.Warn, m.Crit, m.Min, m.Max)
}

// Finding is one graded observation about a single checked subject.
type Finding struct {
	Status  Status
	Message string
	Metrics []Metric
}

// Line renders the finding as one plugin output line.
func (f Finding) Line() string {
	var sb strings.Builder
	sb.WriteString(f.Status.String())
	sb.WriteString(" - ")
	sb.WriteString(f.Message)
	if len(f.Metrics) > 0 {
		sb.WriteString(" |")
		for i, m := range f.Metrics {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.render())
		}
	}
	return sb.String()
}

// Unknown wraps a failure message in a single UNKNOWN finding. Evaluators
// return it when a payload cannot be decoded.
func Unknown(message string) []Finding {
	return []Finding{{Status: StatusUnknown, Message: message}}
}

// Report reduces findings to the lines to print and the process exit code.
// Only the findings at the worst severity present are kept, so every
// simultaneously unhealthy subject is reported, and duplicate lines are
// dropped. No findings at all reports nothing and exits 0.
func Report(findings []Finding) ([]string, int) {
	worst := StatusOK
	for _, f := range findings {
		if f.Status > worst {
			worst = f.Status
		}
	}

	seen := make(map[string]bool)
	var lines []string
	for _, f := range findings {
		if f.Status != worst {
			continue
		}
		line := f.Line()
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return lines, worst.Code()
}

// Exit prints the report to stdout and terminates the process with its
// exit code.
func Exit(findings []Finding) {
	lines, code := Report(findings)
	for _, line := range lines {
		fmt.Println(line)
	}
	os.Exit(code)
}

// ExitUnknown prints a single UNKNOWN line and terminates. Used for
// transport and authentication failures.
func ExitUnknown(message string) {
	fmt.Println(StatusUnknown.String() + " - " + message)
	os.Exit(StatusUnknown.Code())
}
