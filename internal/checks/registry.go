// Package checks enumerates the check subcommands and maps each to its
// API path and threshold requirements.
package checks

import (
	"github.com/corex-mon/check-pve/internal/check"
	"github.com/corex-mon/check-pve/internal/checks/ceph"
	"github.com/corex-mon/check-pve/internal/checks/cluster"
	"github.com/corex-mon/check-pve/internal/checks/disks"
	"github.com/corex-mon/check-pve/internal/checks/node"
	"github.com/corex-mon/check-pve/internal/checks/services"
	"github.com/corex-mon/check-pve/internal/checks/storage"
	"github.com/corex-mon/check-pve/internal/pve"
)

// Spec describes one check subcommand.
type Spec struct {
	Name           string
	Path           func(node string) string
	NeedThresholds bool
	Direction      check.Direction
}

// All returns the spec for every subcommand.
func All() []Spec {
	return []Spec{
		{Name: ceph.Name, Path: clusterWide(pve.CephStatusPath)},
		{Name: ceph.NameIO, Path: pve.NodeCephStatusPath},
		{Name: cluster.Name, Path: clusterWide(pve.ClusterStatusPath)},
		{Name: node.NameCPU, Path: pve.NodeStatusPath, NeedThresholds: true, Direction: check.Ascending},
		{Name: disks.Name, Path: pve.DisksListPath, NeedThresholds: true, Direction: check.Descending},
		{Name: node.NameMemory, Path: pve.NodeStatusPath, NeedThresholds: true, Direction: check.Ascending},
		{Name: node.NamePVEVersion, Path: pve.NodeStatusPath},
		{Name: services.Name, Path: pve.ServicesPath},
		{Name: storage.Name, Path: pve.StoragePath, NeedThresholds: true, Direction: check.Ascending},
		{Name: node.NameSwap, Path: pve.NodeStatusPath, NeedThresholds: true, Direction: check.Ascending},
	}
}

// Lookup returns the spec for a subcommand name.
func Lookup(name string) (Spec, bool) {
	for _, spec := range All() {
		if spec.Name == name {
			return spec, true
		}
	}
	return Spec{}, false
}

// clusterWide adapts a node-independent path for the Spec.Path signature.
func clusterWide(path func() string) func(string) string {
	return func(string) string { return path() }
}
