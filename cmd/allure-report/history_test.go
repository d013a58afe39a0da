package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allurefw/report/internal/history"
	"github.com/allurefw/report/internal/model"
)

// seedHistory creates a history database with two recorded builds.
func seedHistory(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	store, err := history.Open(dir, history.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "Nightly", model.Statistic{Total: 3, Passed: 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "Nightly", model.Statistic{Total: 3, Passed: 2, Failed: 1}); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "l" {
			t.Errorf("expected shorthand 'l', got %q", flag.Shorthand)
		}
		if flag.DefValue != "20" {
			t.Errorf("expected default '20', got %q", flag.DefValue)
		}
	})
}

// TestHistoryCmd tests listing recorded builds.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists builds oldest first", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"history", "--history-dir", dir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		// Header plus two build rows.
		if len(lines) != 3 {
			t.Fatalf("expected 3 output lines, got %d: %q", len(lines), out.String())
		}
		if !strings.Contains(lines[0], "PASSED") {
			t.Errorf("expected header line, got %q", lines[0])
		}
		if !strings.Contains(lines[1], "Nightly") {
			t.Errorf("expected build row, got %q", lines[1])
		}
	})

	t.Run("outputs JSON when requested", func(t *testing.T) {
		t.Parallel()

		dir := seedHistory(t)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"history", "--history-dir", dir, "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		var entries []history.Entry
		if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Statistic.Failed != 0 || entries[1].Statistic.Failed != 1 {
			t.Errorf("expected oldest-first order, got %+v", entries)
		}
	})

	t.Run("fails when no database exists", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"history", "--history-dir", filepath.Join(t.TempDir(), "empty")})

		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "no build history") {
			t.Errorf("expected missing history error, got %v", err)
		}
	})
}
