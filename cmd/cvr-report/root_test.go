package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	if cmd.Use != "cvr-report" {
		t.Errorf("unexpected Use: got %q", cmd.Use)
	}

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"metrics", "export"} {
		if !names[want] {
			t.Errorf("expected subcommand %q", want)
		}
	}
}

func TestMetricsCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewMetricsCmd()
	flagsWithShort := map[string]string{
		"traffic":     "t",
		"conversions": "c",
		"value":       "v",
	}
	for flag, shorthand := range flagsWithShort {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("expected flag %q to exist", flag)
			continue
		}
		if f.Shorthand != shorthand {
			t.Errorf("flag %q: expected shorthand %q, got %q", flag, shorthand, f.Shorthand)
		}
	}
}

func TestMetricsCmdComputesBundle(t *testing.T) {
	t.Parallel()

	cmd := NewMetricsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Flags().Set("traffic", "10000"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("conversions", "250"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("RunE: %v", err)
	}

	var m benchmark.Metrics
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.UserCVR != 2.5 {
		t.Errorf("UserCVR = %v, want 2.5", m.UserCVR)
	}
	if m.ProjectedCVR != 3.25 {
		t.Errorf("ProjectedCVR = %v, want 3.25", m.ProjectedCVR)
	}
}

func TestMetricsCmdRejectsBadBenchmarks(t *testing.T) {
	t.Parallel()

	cmd := NewMetricsCmd()
	cmd.SetOut(new(bytes.Buffer))
	if err := cmd.Flags().Set("traffic", "1000"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("conversions", "10"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("b2b-average", "9.0"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.RunE(cmd, nil); err == nil {
		t.Fatal("expected error when average exceeds top quartile")
	}
}

func TestExportCmdFlags(t *testing.T) {
	t.Parallel()

	cmd := NewExportCmd()
	for _, flag := range []string{"format", "out", "chrome-path", "always-show-average"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q to exist", flag)
		}
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.DefValue != "pdf" {
		t.Errorf("format default = %q, want pdf", f.DefValue)
	}
}
