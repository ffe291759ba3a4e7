// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weather

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
)

func Test_load_csv_interpolates_between_rows(tst *testing.T) {
	chk.PrintTitle("weather: TimeSeries interpolates linearly between rows")

	f, err := os.CreateTemp("", "wx-*.csv")
	if err != nil {
		tst.Fatalf("cannot create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	content := "time,dry_bulb,wind_speed,wind_dir,sky_temp,direct_solar,diffuse_solar\n" +
		"2026-01-01T00:00:00Z,0,1,0,0,0,0\n" +
		"2026-01-01T01:00:00Z,10,1,0,0,0,0\n"
	if _, err := f.WriteString(content); err != nil {
		tst.Fatalf("cannot write temp file: %v", err)
	}
	f.Close()

	ts, err := LoadCSV(f.Name())
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	mid := time.Date(2026, 1, 1, 0, 30, 0, 0, time.UTC)
	s, err := ts.Get(mid)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(s.DryBulbTemp-5) > 1e-9 {
		tst.Errorf("expected interpolated dry bulb temp of 5, got %v", s.DryBulbTemp)
	}

	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sBefore, err := ts.Get(before)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if sBefore.DryBulbTemp != 0 {
		tst.Errorf("expected clamp-to-first before the recorded range, got %v", sBefore.DryBulbTemp)
	}

	after := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	sAfter, err := ts.Get(after)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if sAfter.DryBulbTemp != 10 {
		tst.Errorf("expected clamp-to-last after the recorded range, got %v", sAfter.DryBulbTemp)
	}
}

func Test_load_csv_rejects_missing_file(tst *testing.T) {
	chk.PrintTitle("weather: LoadCSV rejects a missing file")

	if _, err := LoadCSV("/nonexistent/path/to/weather.csv"); err == nil {
		tst.Errorf("expected an error for a missing weather file")
	}
}
