// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package weather

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/germolinal/thermalcore/thermoerr"
)

// record pairs a timestamp with the Sample observed at it.
type record struct {
	at     time.Time
	sample Sample
}

// TimeSeries is a Source backed by a sorted list of timestamped samples,
// linearly interpolated between the two bracketing records. Queries
// before the first or after the last record clamp to the nearest end.
type TimeSeries struct {
	records []record
}

// LoadCSV reads a weather time series from a CSV file with header row
// "time,dry_bulb,wind_speed,wind_dir,sky_temp,direct_solar,diffuse_solar",
// where time is RFC3339.
func LoadCSV(path string) (*TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, thermoerr.New(thermoerr.MissingProperty, "cannot open weather file %q: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, thermoerr.New(thermoerr.MissingProperty, "cannot parse weather file %q: %v", path, err)
	}
	if len(rows) < 2 {
		return nil, thermoerr.New(thermoerr.MissingProperty, "weather file %q has no data rows", path)
	}

	ts := &TimeSeries{}
	for _, row := range rows[1:] {
		if len(row) < 7 {
			return nil, thermoerr.New(thermoerr.DimensionMismatch, "weather file %q: row %v has fewer than 7 columns", path, row)
		}
		at, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, thermoerr.New(thermoerr.MissingProperty, "weather file %q: bad timestamp %q: %v", path, row[0], err)
		}
		vals := make([]float64, 6)
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, thermoerr.New(thermoerr.MissingProperty, "weather file %q: bad value %q: %v", path, row[i+1], err)
			}
			vals[i] = v
		}
		ts.records = append(ts.records, record{at: at, sample: Sample{
			DryBulbTemp: vals[0], WindSpeed: vals[1], WindDirection: vals[2],
			SkyTemp: vals[3], DirectSolar: vals[4], DiffuseSolar: vals[5],
		}})
	}
	sort.Slice(ts.records, func(i, j int) bool { return ts.records[i].at.Before(ts.records[j].at) })
	return ts, nil
}

// Get implements Source, linearly interpolating between bracketing
// records and clamping outside the recorded range.
func (ts *TimeSeries) Get(t time.Time) (Sample, error) {
	n := len(ts.records)
	if n == 0 {
		return Sample{}, thermoerr.New(thermoerr.MissingProperty, "empty weather series")
	}
	if !t.After(ts.records[0].at) {
		return ts.records[0].sample, nil
	}
	if !t.Before(ts.records[n-1].at) {
		return ts.records[n-1].sample, nil
	}
	i := sort.Search(n, func(i int) bool { return ts.records[i].at.After(t) })
	prev, next := ts.records[i-1], ts.records[i]
	span := next.at.Sub(prev.at).Seconds()
	frac := t.Sub(prev.at).Seconds() / span
	return Sample{
		DryBulbTemp:   lerp(prev.sample.DryBulbTemp, next.sample.DryBulbTemp, frac),
		WindSpeed:     lerp(prev.sample.WindSpeed, next.sample.WindSpeed, frac),
		WindDirection: lerp(prev.sample.WindDirection, next.sample.WindDirection, frac),
		SkyTemp:       lerp(prev.sample.SkyTemp, next.sample.SkyTemp, frac),
		DirectSolar:   lerp(prev.sample.DirectSolar, next.sample.DirectSolar, frac),
		DiffuseSolar:  lerp(prev.sample.DiffuseSolar, next.sample.DiffuseSolar, frac),
	}, nil
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}
