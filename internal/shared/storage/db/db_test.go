package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return mockDB, nil
	}
	t.Cleanup(func() {
		openDB = prev
		mockDB.Close()
	})
	return mock
}

func resetSingleton() {
	singletonMu.Lock()
	singletonDB = nil
	singletonInFly = false
	singletonMu.Unlock()
}

func TestConnectRequiresURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); !errors.Is(err, ErrNoDatabaseURL) {
		t.Fatalf("expected ErrNoDatabaseURL, got %v", err)
	}
}

func TestConnectPingFailure(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	_, err := Connect(context.Background(), "postgres://ignored", DefaultServerOptions())
	if err == nil || !strings.Contains(err.Error(), "ping database") {
		t.Fatalf("expected ping error, got %v", err)
	}
}

func TestGetSingletonReturnsSamePointer(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing()
	resetSingleton()
	t.Cleanup(resetSingleton)

	db1, err := GetSingleton(context.Background(), "postgres://ignored", DefaultLambdaOptions())
	if err != nil {
		t.Fatalf("GetSingleton first: %v", err)
	}
	db2, err := GetSingleton(context.Background(), "postgres://ignored", DefaultLambdaOptions())
	if err != nil {
		t.Fatalf("GetSingleton second: %v", err)
	}
	if db1 != db2 {
		t.Fatalf("expected singleton pointers to match")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected a single ping: %v", err)
	}
}

func TestGetSingletonRetriesAfterFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer mockDB.Close()
	mock.ExpectPing()

	calls := 0
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("dns failure")
		}
		return mockDB, nil
	}
	defer func() { openDB = prev }()
	resetSingleton()
	t.Cleanup(resetSingleton)

	if _, err := GetSingleton(context.Background(), "postgres://ignored", DefaultLambdaOptions()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	db2, err := GetSingleton(context.Background(), "postgres://ignored", DefaultLambdaOptions())
	if err != nil {
		t.Fatalf("expected second call to succeed: %v", err)
	}
	if db2 == nil {
		t.Fatalf("expected db after retry")
	}
}

func TestOptionsFromEnvAppliesOverrides(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectPing()

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "bogus")

	opts := OptionsFromEnv(DefaultServerOptions())
	db, err := Connect(context.Background(), "postgres://ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if got := db.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", got)
	}
	if opts.MaxIdleConns != 3 || opts.ConnMaxLifetime != 20*time.Minute || opts.ConnMaxIdleTime != 45*time.Second {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.PingTimeout != DefaultServerOptions().PingTimeout {
		t.Fatalf("expected invalid duration to keep default, got %s", opts.PingTimeout)
	}
}

func TestMigrateNilDatabaseIsNoop(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, migrationsDir)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(entries))
	}
	data, err := fs.ReadFile(migrationFiles, migrationsDir+"/00002_create_resume_analyses.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, want := range []string{"-- +goose Up", "REFERENCES resumes", "'pending', 'processing', 'completed', 'failed'"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in analyses migration", want)
		}
	}
}
