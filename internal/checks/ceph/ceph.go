// Package ceph evaluates Ceph cluster health and IO statistics.
package ceph

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/corex-mon/check-pve/internal/check"
	"github.com/corex-mon/check-pve/internal/units"
)

// Subcommand names served by this package.
const (
	Name   = "ceph"
	NameIO = "ceph_io"
)

// Check reports whether the Ceph cluster health is HEALTH_OK.
func Check(data []byte) []check.Finding {
	var payload struct {
		Health struct {
			Status string `json:"status"`
		} `json:"health"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return check.Unknown("Could not parse ceph status: " + err.Error())
	}

	if payload.Health.Status != "HEALTH_OK" {
		return []check.Finding{{
			Status:  check.StatusWarning,
			Message: "CEPH cluster is unhealthy!",
		}}
	}
	return []check.Finding{{
		Status:  check.StatusOK,
		Message: "CEPH cluster is healthy.",
	}}
}

// IOThresholds are the warning levels for the ceph_io check. Either
// direction meeting its level raises the warning.
type IOThresholds struct {
	Ops   int // operations per second
	Bytes int // MB per second
}

// CheckIO produces two findings from pgmap statistics: one for IO
// operations per second and one for byte throughput in MB/s, each with a
// read and a write metric.
func CheckIO(data []byte, th IOThresholds) []check.Finding {
	var payload struct {
		PGMap struct {
			ReadBytesSec  int64 `json:"read_bytes_sec"`
			WriteBytesSec int64 `json:"write_bytes_sec"`
			ReadOpPerSec  int64 `json:"read_op_per_sec"`
			WriteOpPerSec int64 `json:"write_op_per_sec"`
		} `json:"pgmap"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return check.Unknown("Could not parse ceph status: " + err.Error())
	}

	readOps := payload.PGMap.ReadOpPerSec
	writeOps := payload.PGMap.WriteOpPerSec
	readMB := units.Round(float64(payload.PGMap.ReadBytesSec)/(1<<20), 2)
	writeMB := units.Round(float64(payload.PGMap.WriteBytesSec)/(1<<20), 2)

	opsStatus := check.StatusOK
	if int64(th.Ops) <= readOps || int64(th.Ops) <= writeOps {
		opsStatus = check.StatusWarning
	}
	ops := check.Finding{
		Status: opsStatus,
		Message: fmt.Sprintf("CEPH IO operation usage is %d ops read / %d ops write per seconds.",
			readOps, writeOps),
		Metrics: []check.Metric{
			{Label: "ceph io read per sec", Value: strconv.FormatInt(readOps, 10), Warn: strconv.Itoa(th.Ops), Min: "0"},
			{Label: "ceph io write per sec", Value: strconv.FormatInt(writeOps, 10), Warn: strconv.Itoa(th.Ops), Min: "0"},
		},
	}

	bytesStatus := check.StatusOK
	if float64(th.Bytes) <= readMB || float64(th.Bytes) <= writeMB {
		bytesStatus = check.StatusWarning
	}
	throughput := check.Finding{
		Status: bytesStatus,
		Message: fmt.Sprintf("CEPH IO byte usage is %s MB read / %s MB write per seconds.",
			units.Ftoa(readMB), units.Ftoa(writeMB)),
		Metrics: []check.Metric{
			{Label: "ceph byte read per sec", Value: units.Ftoa(readMB), Warn: strconv.Itoa(th.Bytes), Min: "0"},
			{Label: "ceph byte write per sec", Value: units.Ftoa(writeMB), Warn: strconv.Itoa(th.Bytes), Min: "0"},
		},
	}

	return []check.Finding{ops, throughput}
}
