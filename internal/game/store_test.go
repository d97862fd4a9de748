package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

func playerValues(xp, level, assets int64) []any {
	return []any{
		"u1", "dre", now,
		int64(1_000), xp, int64(0), level, 1, int64(100), int64(100), now,
		int64(1), int64(1), int64(0), assets,
	}
}

func TestScanPlayerDerivesLevel(t *testing.T) {
	tests := []struct {
		name      string
		xp, level int64
		assets    int64
		want      int64
	}{
		{name: "after prestige reset", xp: 50_000, level: 1, want: 22},
		{name: "stale high level", xp: 0, level: 80, want: 1},
		{name: "assets count", xp: 10_000, level: 10, assets: 40, want: 12},
	}
	for _, tc := range tests {
		r, err := scanPlayer(fakeRow{vals: playerValues(tc.xp, tc.level, tc.assets)})
		if err != nil {
			t.Fatalf("%s: scan: %v", tc.name, err)
		}
		if r.Level != tc.want {
			t.Fatalf("%s: expected level %d, got %d", tc.name, tc.want, r.Level)
		}
	}
}

func TestScanPlayerNotFound(t *testing.T) {
	if _, err := scanPlayer(fakeRow{err: pgx.ErrNoRows}); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected player not found, got %v", err)
	}
}
