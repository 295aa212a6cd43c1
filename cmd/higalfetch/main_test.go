package main

import (
	"context"
	"path/filepath"
	"testing"

	"higalfetch/internal/survey"
	"higalfetch/internal/testsupport"
)

func TestRootHelpListsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--help"}, env.configPath)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"fetch", "migrate", "history", "check", "config"} {
		requireContains(t, out, name)
	}
}

func TestFetchRequiresCoordinates(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"fetch"}, env.configPath); err == nil {
		t.Fatal("expected error for missing required flags")
	}
}

func TestHistoryEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No requests recorded yet")
}

func TestHistoryListsRecords(t *testing.T) {
	env := setupCLITestEnv(t)

	store := testsupport.MustOpenJournal(t, env.cfg)
	req, err := survey.NewSearchRequest(
		"W43",
		survey.Coordinates{Frame: survey.FrameGalactic, Lon: 30.75, Lat: -0.06},
		survey.Angle(20),
		nil,
	)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	record, err := store.NewRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("seed journal: %v", err)
	}

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, record.RequestID[:8])
	requireContains(t, out, "W43")
	requireContains(t, out, "pending")
}

func TestMigrateCommandMovesFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.DownloadDir, "map_354_blue.fits"), 32)

	out, _, err := runCLI(t, []string{"migrate"}, env.configPath)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	requireContains(t, out, "map_354_blue.fits")
}
