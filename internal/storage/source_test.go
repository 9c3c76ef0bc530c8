package storage

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestResolveSource(t *testing.T) {
	cases := []struct {
		src     Source
		path    string
		want    Source
		wantErr bool
	}{
		{SourceAuto, "data/ladder_data.parquet", SourceParquet, false},
		{"", "ladder.CSV", SourceCSV, false},
		{"AUTO", "ladder.xlsx", SourceXLSX, false},
		{SourceAuto, "ladder.json", "", true},
		{SourcePostgres, "", SourcePostgres, false},
		{" csv ", "ladder.parquet", SourceCSV, false},
		{"mysql", "", "", true},
	}
	for _, c := range cases {
		got, err := ResolveSource(c.src, c.path)
		if (err != nil) != c.wantErr || got != c.want {
			t.Fatalf("ResolveSource(%q,%q)=%q,%v", c.src, c.path, got, err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedSource) {
			t.Fatalf("error should wrap ErrUnsupportedSource: %v", err)
		}
	}
}

func TestNewLoader(t *testing.T) {
	if _, err := NewLoader(Options{Source: SourcePostgres}); !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("postgres without db should fail, got %v", err)
	}

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	cases := []struct {
		opts     Options
		location string
	}{
		{Options{Path: "a.parquet"}, "a.parquet"},
		{Options{Path: "a.csv"}, "a.csv"},
		{Options{Path: "a.xlsx", Sheet: "ladder"}, "a.xlsx#ladder"},
		{Options{Source: SourcePostgres, DB: db}, "postgres:ladder"},
		{Options{Source: SourcePostgres, DB: db, Table: "analytics.ladder"}, "postgres:analytics.ladder"},
	}
	for _, c := range cases {
		l, err := NewLoader(c.opts)
		if err != nil {
			t.Fatalf("NewLoader(%+v): %v", c.opts, err)
		}
		if l.Location() != c.location {
			t.Fatalf("Location()=%q, want %q", l.Location(), c.location)
		}
	}
}
