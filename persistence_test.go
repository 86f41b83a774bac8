package genetic_route

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	test "testing"

	_ "github.com/glebarez/go-sqlite"
	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

func memoryDSN(t *test.T) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
}

func setupPersistence(t *test.T, batchSize int) *Persistence {
	db, err := gorm.Open(sqlite.Open(memoryDSN(t)), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open in-memory DB: %v", err)
	}
	persist, err := OpenPersistence(&PersistenceConfig{BatchSize: batchSize}, db)
	if err != nil {
		t.Fatalf("Failed to initialize persistence: %v", err)
	}
	t.Cleanup(func() { persist.Shutdown() })
	return persist
}

func countRows(t *test.T, table string) int64 {
	db, err := sql.Open("sqlite", memoryDSN(t))
	if err != nil {
		t.Fatalf("Failed to open raw DB: %v", err)
	}
	defer db.Close()

	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
}

func TestRunRecorderStoresGenerations(t *test.T) {
	persist := setupPersistence(t, 2)
	config := testEvolutionConfig()
	config.GenerationCount = 4

	recorder, err := persist.StartRun(99, config)
	if err != nil {
		t.Fatalf("StartRun returned error: %v", err)
	}
	if recorder.Run.ID == 0 {
		t.Fatalf("Expected the run to get an ID")
	}

	e := newTestEvolution(t, 99, config, recorder)
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// Batches of two: generations 0..3 are flushed, 4 is still pending.
	if count := countRows(t, "generation_stats"); count != 4 {
		t.Errorf("Expected 4 flushed stats, got %d", count)
	}
	if err := recorder.Finish(result); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	run, err := persist.LoadRun(recorder.Run.ID)
	if err != nil {
		t.Fatalf("LoadRun returned error: %v", err)
	}
	if len(run.Stats) != 5 {
		t.Fatalf("Expected 5 stats, got %d", len(run.Stats))
	}
	for i, s := range run.Stats {
		if s.Generation != i {
			t.Errorf("Expected generation %d at %d, got %d", i, i, s.Generation)
		}
	}
	if run.Seed != 99 || run.NodeCount != 12 || run.PathsCount != 15 || run.PathLength != 8 {
		t.Errorf("Run header not stored: %+v", run)
	}
	if run.Generations != 4 || run.FinishedAt == nil {
		t.Errorf("Expected a finished run of 4 generations, got %d (finished %v)", run.Generations, run.FinishedAt)
	}
	if run.BestLength != result.BestLength || run.BestLength != run.Stats[4].BestLength {
		t.Errorf("Expected best length %v, got %v", result.BestLength, run.BestLength)
	}
	if run.BestPath != fmt.Sprint(result.BestPath) {
		t.Errorf("Expected best path %v, got %s", result.BestPath, run.BestPath)
	}
}

func TestListRunsNewestFirst(t *test.T) {
	persist := setupPersistence(t, 0)
	for seed := int64(1); seed <= 3; seed++ {
		if _, err := persist.StartRun(seed, testEvolutionConfig()); err != nil {
			t.Fatalf("StartRun returned error: %v", err)
		}
	}

	runs, err := persist.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Seed != 3 || runs[1].Seed != 2 {
		t.Errorf("Expected seeds 3 then 2, got %d then %d", runs[0].Seed, runs[1].Seed)
	}
	if count := countRows(t, "runs"); count != 3 {
		t.Errorf("Expected 3 runs stored, got %d", count)
	}
}

func TestLoadRunMissing(t *test.T) {
	persist := setupPersistence(t, 0)
	if _, err := persist.LoadRun(12345); err == nil {
		t.Errorf("Expected an error for a missing run")
	}
}

func TestStartRunRejectsIncompleteConfig(t *test.T) {
	persist := setupPersistence(t, 0)
	if _, err := persist.StartRun(1, &EvolutionConfig{}); err == nil {
		t.Errorf("Expected an error for a config without graph and population")
	}
}

func TestPersistenceDSN(t *test.T) {
	config := &PersistenceConfig{
		Name:          "runs.db",
		Path:          "/var/lib/route",
		SQLitePragmas: []string{"journal_mode=WAL", "busy_timeout=5000"},
		SQLiteOptions: []string{"cache=shared"},
	}
	dsn, err := config.DSN()
	if err != nil {
		t.Fatalf("DSN returned error: %v", err)
	}
	expected := "/var/lib/route/runs.db?_pragma=journal_mode=WAL&_pragma=busy_timeout=5000&cache=shared"
	if dsn != expected {
		t.Errorf("Expected %s, got %s", expected, dsn)
	}

	config.SQLitePragmas, config.SQLiteOptions = nil, nil
	if dsn, _ := config.DSN(); strings.Contains(dsn, "?") {
		t.Errorf("Expected no query string, got %s", dsn)
	}

	if _, err := (&PersistenceConfig{}).DSN(); err == nil {
		t.Errorf("Expected an error without a database name")
	}
}
