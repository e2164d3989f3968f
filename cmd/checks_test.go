package cmd

import (
	"io"
	"strings"
	"testing"
)

// execute runs the root command with args and returns the error, keeping
// usage output away from the test log. Only invalid configurations are
// exercised here; they must fail before any network call is attempted.
func execute(args ...string) error {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestMissingThresholdsRejected(t *testing.T) {
	err := execute("cpu",
		"--hostname", "pve.example.com",
		"--api_user", "monitoring@pve",
		"--api_token", "id=secret",
		"--nodename", "pve1",
	)
	if err == nil {
		t.Fatal("expected an error for missing thresholds")
	}
	if !strings.Contains(err.Error(), "--warning and --critical arguments are required for 'cpu' subcommand!") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAscendingThresholdOrderRejected(t *testing.T) {
	err := execute("memory",
		"--hostname", "pve.example.com",
		"--api_user", "monitoring@pve",
		"--api_token", "id=secret",
		"--nodename", "pve1",
		"--warning", "90",
		"--critical", "80",
	)
	if err == nil {
		t.Fatal("expected an error for inverted thresholds")
	}
	if !strings.Contains(err.Error(), "--warning threshold must be lower then --critical threshold for 'memory' subcommand!") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDescendingThresholdOrderRejected(t *testing.T) {
	err := execute("disks_health",
		"--hostname", "pve.example.com",
		"--api_user", "monitoring@pve",
		"--api_token", "id=secret",
		"--nodename", "pve1",
		"--warning", "10",
		"--critical", "30",
	)
	if err == nil {
		t.Fatal("expected an error for inverted wearout thresholds")
	}
	if !strings.Contains(err.Error(), "--warning threshold must be higher then --critical threshold for 'disks_health' subcommand!") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMissingHostnameRejected(t *testing.T) {
	err := execute("services",
		"--hostname", "",
		"--api_user", "monitoring@pve",
		"--api_token", "id=secret",
		"--nodename", "pve1",
	)
	if err == nil {
		t.Fatal("expected an error for missing hostname")
	}
	if !strings.Contains(err.Error(), "--hostname is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBothCredentialsRejected(t *testing.T) {
	err := execute("services",
		"--hostname", "pve.example.com",
		"--api_user", "monitoring@pve",
		"--api_token", "id=secret",
		"--api_password", "hunter2",
		"--nodename", "pve1",
	)
	if err == nil {
		t.Fatal("expected an error for both credentials")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("unexpected error: %v", err)
	}
}
