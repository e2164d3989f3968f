package ceph

import (
	"testing"

	"github.com/corex-mon/check-pve/internal/check"
)

func TestCheckHealthy(t *testing.T) {
	findings := Check([]byte(`{"health":{"status":"HEALTH_OK"}}`))
	if findings[0].Status != check.StatusOK {
		t.Errorf("expected status %v, got %v", check.StatusOK, findings[0].Status)
	}
	if findings[0].Message != "CEPH cluster is healthy." {
		t.Errorf("unexpected message: %s", findings[0].Message)
	}
}

func TestCheckUnhealthy(t *testing.T) {
	findings := Check([]byte(`{"health":{"status":"HEALTH_WARN"}}`))
	if findings[0].Status != check.StatusWarning {
		t.Errorf("expected status %v, got %v", check.StatusWarning, findings[0].Status)
	}
	if findings[0].Message != "CEPH cluster is unhealthy!" {
		t.Errorf("unexpected message: %s", findings[0].Message)
	}
}

const ioPayload = `{"pgmap":{
	"read_bytes_sec": 52428800,
	"write_bytes_sec": 104857600,
	"read_op_per_sec": 500,
	"write_op_per_sec": 700
}}`

func TestCheckIOBelowThresholds(t *testing.T) {
	findings := CheckIO([]byte(ioPayload), IOThresholds{Ops: 10000, Bytes: 200})
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(findings))
	}

	wantOps := "OK - CEPH IO operation usage is 500 ops read / 700 ops write per seconds. " +
		"|'ceph io read per sec'=500;10000;;0; 'ceph io write per sec'=700;10000;;0;"
	if got := findings[0].Line(); got != wantOps {
		t.Errorf("expected ops line %q, got %q", wantOps, got)
	}

	wantBytes := "OK - CEPH IO byte usage is 50.0 MB read / 100.0 MB write per seconds. " +
		"|'ceph byte read per sec'=50.0;200;;0; 'ceph byte write per sec'=100.0;200;;0;"
	if got := findings[1].Line(); got != wantBytes {
		t.Errorf("expected byte line %q, got %q", wantBytes, got)
	}
}

func TestCheckIOOpsWarning(t *testing.T) {
	payload := `{"pgmap":{"read_bytes_sec":0,"write_bytes_sec":0,"read_op_per_sec":10000,"write_op_per_sec":1}}`
	findings := CheckIO([]byte(payload), IOThresholds{Ops: 10000, Bytes: 200})
	if findings[0].Status != check.StatusWarning {
		t.Errorf("expected ops status %v, got %v", check.StatusWarning, findings[0].Status)
	}
	if findings[1].Status != check.StatusOK {
		t.Errorf("expected byte status %v, got %v", check.StatusOK, findings[1].Status)
	}
}

func TestCheckIOBytesWarning(t *testing.T) {
	// 250 MB/s write meets the 200 MB/s threshold.
	payload := `{"pgmap":{"read_bytes_sec":0,"write_bytes_sec":262144000,"read_op_per_sec":1,"write_op_per_sec":1}}`
	findings := CheckIO([]byte(payload), IOThresholds{Ops: 10000, Bytes: 200})
	if findings[0].Status != check.StatusOK {
		t.Errorf("expected ops status %v, got %v", check.StatusOK, findings[0].Status)
	}
	if findings[1].Status != check.StatusWarning {
		t.Errorf("expected byte status %v, got %v", check.StatusWarning, findings[1].Status)
	}
}
