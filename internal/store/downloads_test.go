// ABOUTME: Tests for download log storage.
// ABOUTME: Covers inserts, recent-first listing and aggregate stats.

package store

import "testing"

func TestLogDownload_Recent(t *testing.T) {
	s := newTestStore(t)

	for _, l := range []*DownloadLog{
		{Scenario: "valid", Method: "GET", Path: "/scenarios/valid", StatusCode: 200, Bytes: 9000},
		{Scenario: "large", Method: "GET", Path: "/scenarios/large", StatusCode: 200, Bytes: 80000, UserAgent: "curl/8"},
	} {
		if err := s.LogDownload(l); err != nil {
			t.Fatalf("LogDownload() error = %v", err)
		}
	}

	logs, err := s.GetRecentDownloads(10)
	if err != nil {
		t.Fatalf("GetRecentDownloads() error = %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].Scenario != "large" || logs[0].UserAgent != "curl/8" {
		t.Errorf("newest log = %+v, want large", logs[0])
	}
	if logs[1].IPAddress != "" {
		t.Errorf("IPAddress = %q, want empty", logs[1].IPAddress)
	}

	logs, err = s.GetRecentDownloads(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Errorf("limit 1 returned %d logs", len(logs))
	}
}

func TestGetDownloadStats(t *testing.T) {
	s := newTestStore(t)

	for _, l := range []*DownloadLog{
		{Scenario: "valid", Method: "GET", Path: "/scenarios/valid", StatusCode: 200},
		{Scenario: "valid", Method: "GET", Path: "/scenarios/valid", StatusCode: 200},
		{Scenario: "empty", Method: "GET", Path: "/scenarios/empty", StatusCode: 200},
		{Scenario: "bogus", Method: "GET", Path: "/scenarios/bogus", StatusCode: 404},
		{Scenario: "valid", Method: "GET", Path: "/scenarios/valid", StatusCode: 400},
	} {
		if err := s.LogDownload(l); err != nil {
			t.Fatalf("LogDownload() error = %v", err)
		}
	}

	stats, err := s.GetDownloadStats()
	if err != nil {
		t.Fatalf("GetDownloadStats() error = %v", err)
	}
	if stats.TotalDownloads != 5 {
		t.Errorf("TotalDownloads = %d, want 5", stats.TotalDownloads)
	}
	if stats.ErrorDownloads != 2 {
		t.Errorf("ErrorDownloads = %d, want 2", stats.ErrorDownloads)
	}
	if stats.PerScenario["valid"] != 2 || stats.PerScenario["empty"] != 1 {
		t.Errorf("PerScenario = %v", stats.PerScenario)
	}
	if _, ok := stats.PerScenario["bogus"]; ok {
		t.Error("failed downloads should not count per scenario")
	}
}

func TestGetDownloadStats_Empty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.GetDownloadStats()
	if err != nil {
		t.Fatalf("GetDownloadStats() error = %v", err)
	}
	if stats.TotalDownloads != 0 || stats.ErrorDownloads != 0 || len(stats.PerScenario) != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
}
