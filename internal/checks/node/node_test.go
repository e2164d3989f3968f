package node

import (
	"testing"

	"github.com/corex-mon/check-pve/internal/check"
)

func TestCheckCPUCritical(t *testing.T) {
	findings := CheckCPU([]byte(`{"cpu":0.90}`), check.Thresholds{Warning: 65, Critical: 85})
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Status != check.StatusCritical {
		t.Errorf("expected status %v, got %v", check.StatusCritical, findings[0].Status)
	}
	want := "CRITICAL - CPU usage is 90.0 %. |usage=90.0%;65;85;0;100"
	if got := findings[0].Line(); got != want {
		t.Errorf("expected line %q, got %q", want, got)
	}
}

func TestCheckCPUWarningAtBoundary(t *testing.T) {
	// Usage equal to the warning threshold is already a warning.
	findings := CheckCPU([]byte(`{"cpu":0.65}`), check.Thresholds{Warning: 65, Critical: 85})
	if findings[0].Status != check.StatusWarning {
		t.Errorf("expected status %v, got %v", check.StatusWarning, findings[0].Status)
	}
}

func TestCheckCPUCriticalAtBoundary(t *testing.T) {
	findings := CheckCPU([]byte(`{"cpu":0.85}`), check.Thresholds{Warning: 65, Critical: 85})
	if findings[0].Status != check.StatusCritical {
		t.Errorf("expected status %v, got %v", check.StatusCritical, findings[0].Status)
	}
}

func TestCheckCPUOK(t *testing.T) {
	findings := CheckCPU([]byte(`{"cpu":0.1234}`), check.Thresholds{Warning: 65, Critical: 85})
	if findings[0].Status != check.StatusOK {
		t.Errorf("expected status %v, got %v", check.StatusOK, findings[0].Status)
	}
	want := "OK - CPU usage is 12.34 %. |usage=12.34%;65;85;0;100"
	if got := findings[0].Line(); got != want {
		t.Errorf("expected line %q, got %q", want, got)
	}
}

func TestCheckCPUBadPayload(t *testing.T) {
	findings := CheckCPU([]byte(`[]`), check.Thresholds{Warning: 65, Critical: 85})
	if findings[0].Status != check.StatusUnknown {
		t.Errorf("expected status %v, got %v", check.StatusUnknown, findings[0].Status)
	}
}

const memoryPayload = `{
	"memory": {"used": 8589934592, "total": 17179869184},
	"swap":   {"used": 0, "total": 4294967296}
}`

func TestCheckMemoryOK(t *testing.T) {
	findings := CheckMemory([]byte(memoryPayload), NameMemory, check.Thresholds{Warning: 70, Critical: 80})
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	want := "OK - memory usage is 50.0 % (8.0 GB / 16.0 GB)! |usage=8.0GB;11.2;12.8;0;16.0"
	if got := findings[0].Line(); got != want {
		t.Errorf("expected line %q, got %q", want, got)
	}
}

func TestCheckMemoryCriticalAtBoundary(t *testing.T) {
	payload := `{"memory": {"used": 13743895347, "total": 17179869184}}`
	// 12.8 GB of 16.0 GB is exactly 80 percent.
	findings := CheckMemory([]byte(payload), NameMemory, check.Thresholds{Warning: 70, Critical: 80})
	if findings[0].Status != check.StatusCritical {
		t.Errorf("expected status %v, got %v", check.StatusCritical, findings[0].Status)
	}
}

func TestCheckSwapUsesSwapSection(t *testing.T) {
	findings := CheckMemory([]byte(memoryPayload), NameSwap, check.Thresholds{Warning: 70, Critical: 80})
	want := "OK - swap usage is 0.0 % (0.0 GB / 4.0 GB)! |usage=0.0GB;2.8;3.2;0;4.0"
	if got := findings[0].Line(); got != want {
		t.Errorf("expected line %q, got %q", want, got)
	}
}

func TestCheckMemoryZeroTotal(t *testing.T) {
	payload := `{"swap": {"used": 0, "total": 0}}`
	findings := CheckMemory([]byte(payload), NameSwap, check.Thresholds{Warning: 70, Critical: 80})
	if findings[0].Status != check.StatusOK {
		t.Errorf("expected status %v, got %v", check.StatusOK, findings[0].Status)
	}
}

func TestCheckVersion(t *testing.T) {
	findings := CheckVersion([]byte(`{"pveversion":"pve-manager/8.1.4/ec5affc9e41f1d79"}`))
	if findings[0].Status != check.StatusOK {
		t.Errorf("expected status %v, got %v", check.StatusOK, findings[0].Status)
	}
	want := "OK - pve-manager/8.1.4"
	if got := findings[0].Line(); got != want {
		t.Errorf("expected line %q, got %q", want, got)
	}
}

func TestCheckVersionMalformed(t *testing.T) {
	findings := CheckVersion([]byte(`{"pveversion":"garbage"}`))
	if findings[0].Status != check.StatusUnknown {
		t.Errorf("expected status %v, got %v", check.StatusUnknown, findings[0].Status)
	}
}
