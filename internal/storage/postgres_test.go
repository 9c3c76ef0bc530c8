package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/boardpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

func newMockLoader(t *testing.T, table string) (Loader, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	return NewPostgresLoader(db, table), mock, func() { _ = db.Close() }
}

func TestPostgresLoader_SQLMock(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		table   string
		query   string
		rows    *sqlmock.Rows
		err     error
		want    int
		wantErr bool
		missing bool
	}{
		{
			name:  "default table",
			query: `SELECT * FROM "ladder"`,
			rows: sqlmock.NewRows(models.Columns).
				AddRow(day, "000001", "平安银行", []byte("11.00"), []byte("11.00"), true, int64(2), "连板", []byte("1.5")).
				AddRow(day, "000002", "万科A", []byte("8.00"), []byte("8.80"), false, int64(0), nil, nil),
			want: 2,
		},
		{
			name:  "schema qualified",
			table: "analytics.ladder",
			query: `SELECT * FROM "analytics"."ladder"`,
			rows:  sqlmock.NewRows(models.Columns),
			want:  0,
		},
		{
			name:    "missing table",
			query:   `SELECT * FROM "ladder"`,
			err:     &pq.Error{Code: "42P01", Message: `relation "ladder" does not exist`},
			wantErr: true,
			missing: true,
		},
		{
			name:    "other error",
			query:   `SELECT * FROM "ladder"`,
			err:     errors.New("connection reset"),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader, mock, done := newMockLoader(t, tc.table)
			defer done()

			exp := mock.ExpectQuery(regexp.QuoteMeta(tc.query))
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnRows(tc.rows)
			}

			rows, err := loader.Load(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tc.wantErr)
			}
			var mde *MissingDataError
			if errors.As(err, &mde) != tc.missing {
				t.Fatalf("missing=%v, err=%v", !tc.missing, err)
			}
			if len(rows) != tc.want {
				t.Fatalf("rows=%d, want %d", len(rows), tc.want)
			}
			if tc.want > 0 {
				if rows[0]["close"] != "11.00" {
					t.Fatalf("numeric bytes should become text, got %T", rows[0]["close"])
				}
				ds, err := buildDataset(rows, loader.Location())
				if err != nil || len(ds.LimitUp()) != 1 {
					t.Fatalf("buildDataset: ds=%v err=%v", ds, err)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestQuoteTable(t *testing.T) {
	cases := map[string]string{
		"ladder":           `"ladder"`,
		"analytics.ladder": `"analytics"."ladder"`,
		`we"ird`:           `"we""ird"`,
	}
	for in, want := range cases {
		if got := quoteTable(in); got != want {
			t.Fatalf("quoteTable(%q)=%s, want %s", in, got, want)
		}
	}
}
