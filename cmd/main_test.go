package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/boardpulse/config"
	"github.com/guttosm/boardpulse/internal/cli"
)

func withLadderFile(t *testing.T, file string) {
	t.Helper()
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Ladder:  config.LadderConfig{Source: "auto", File: file},
		Display: config.DisplayConfig{Limit: 30, TrendDays: 7},
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ladder.csv")
	content := "date,symbol,name,close,limit_price,is_limit_up,consecutive_limit_up_days,board_type,next_day_open_change_pct\n" +
		"2024-01-05,000001,平安银行,11.00,11.00,True,2,连板,3.1\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name    string
		file    string
		args    []string
		code    int
		wantOut string
		wantErr string
	}{
		{name: "query", file: csvPath, args: []string{"query", "20240105"}, code: 0, wantOut: "000001"},
		{name: "missing dataset", file: filepath.Join(dir, "absent.parquet"), args: []string{"trend"}, code: 1, wantErr: "hint:"},
		{name: "bad source", file: filepath.Join(dir, "ladder.txt"), args: []string{"trend"}, code: 1, wantErr: "error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withLadderFile(t, tt.file)
			var out, errOut bytes.Buffer

			code := run(context.Background(), tt.args, cli.IO{In: strings.NewReader(""), Out: &out, Err: &errOut})
			if code != tt.code {
				t.Fatalf("exit %d, want %d (stderr %q)", code, tt.code, errOut.String())
			}
			if !strings.Contains(out.String(), tt.wantOut) || !strings.Contains(errOut.String(), tt.wantErr) {
				t.Fatalf("stdout %q stderr %q", out.String(), errOut.String())
			}
		})
	}
}

func TestNotifyInterrupts(t *testing.T) {
	sig, stop := notifyInterrupts()
	defer stop()

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case s := <-sig:
		if s != syscall.SIGTERM {
			t.Fatalf("got %v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("SIGTERM not delivered")
	}
}
