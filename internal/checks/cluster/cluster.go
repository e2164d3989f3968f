// Package cluster evaluates cluster quorum and node liveness.
package cluster

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/corex-mon/check-pve/internal/check"
)

// Name is the subcommand name.
const Name = "cluster"

type entry struct {
	Name    string `json:"name"`
	Quorate *int   `json:"quorate"`
	Online  int    `json:"online"`
}

// Check grades the cluster status listing. The first entry is the cluster
// summary, the rest are nodes. A null quorate field means the host is not
// part of a cluster at all, which is a warning rather than an error.
func Check(data []byte) []check.Finding {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return check.Unknown("Could not parse cluster status: " + err.Error())
	}
	if len(entries) == 0 {
		return check.Unknown("Could not parse cluster status: empty response")
	}

	summary := entries[0]
	if summary.Quorate == nil {
		return []check.Finding{{
			Status:  check.StatusWarning,
			Message: "There is no cluster configuration!",
		}}
	}
	if *summary.Quorate != 1 {
		return []check.Finding{{
			Status:  check.StatusCritical,
			Message: fmt.Sprintf("There is no quorum in %s cluster!", summary.Name),
		}}
	}

	var offline []string
	for _, node := range entries[1:] {
		if node.Online != 1 {
			offline = append(offline, node.Name)
		}
	}
	if len(offline) > 0 {
		return []check.Finding{{
			Status: check.StatusWarning,
			Message: fmt.Sprintf("%s cluster are working, but there is offline nodes: %s!",
				summary.Name, nameTuple(offline)),
		}}
	}
	return []check.Finding{{
		Status:  check.StatusOK,
		Message: fmt.Sprintf("%s cluster is working well.", summary.Name),
	}}
}

// nameTuple formats the offline node list in the form existing alert
// handlers match on: ('pve2',) for one node, ('pve2', 'pve3') for more.
func nameTuple(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	if len(quoted) == 1 {
		return "(" + quoted[0] + ",)"
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}
