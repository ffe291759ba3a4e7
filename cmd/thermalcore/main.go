// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/germolinal/thermalcore/catalog"
	"github.com/germolinal/thermalcore/model"
	"github.com/germolinal/thermalcore/weather"
)

func main() {

	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// message
	io.PfWhite("\nthermalcore -- 1D finite-difference building thermal network\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	flag.Parse()
	if len(flag.Args()) < 2 {
		chk.Panic("Please, provide a catalog file and a scene file. Ex.: materials.json house.scene.json [weather.csv] [nsteps]\n")
	}
	catalogPath := flag.Arg(0)
	scenePath := flag.Arg(1)

	var weatherPath string
	if len(flag.Args()) > 2 {
		weatherPath = flag.Arg(2)
	}

	nSteps := 96
	if len(flag.Args()) > 3 {
		n, err := strconv.Atoi(flag.Arg(3))
		if err != nil {
			chk.Panic("bad step count %q: %v\n", flag.Arg(3), err)
		}
		nSteps = n
	}

	if verbose {
		io.Pfcyan("catalog    = %v\n", catalogPath)
		io.Pfcyan("scene      = %v\n", scenePath)
		io.Pfcyan("weather    = %v\n", weatherPath)
		io.Pfcyan("steps      = %v\n\n", nSteps)
	}

	cat, err := catalog.LoadJSON(catalogPath)
	if err != nil {
		chk.Panic("loading catalog failed: %v\n", err)
	}

	sc, err := model.LoadScene(scenePath)
	if err != nil {
		chk.Panic("loading scene failed: %v\n", err)
	}

	m, st, err := model.Build(cat, sc)
	if err != nil {
		chk.Panic("assembling model failed: %v\n", err)
	}

	var wx weather.Source
	if weatherPath != "" {
		ts, err := weather.LoadCSV(weatherPath)
		if err != nil {
			chk.Panic("loading weather failed: %v\n", err)
		}
		wx = ts
	} else {
		wx = weather.Constant{Sample: weather.Sample{DryBulbTemp: 10, SkyTemp: 5}}
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	header := []string{"step", "time"}
	for _, z := range m.Zones {
		header = append(header, z.Name+".air_temp")
	}
	if err := w.Write(header); err != nil {
		chk.Panic("writing output header failed: %v\n", err)
	}

	date := time.Now().UTC().Truncate(time.Second)
	ctx := context.Background()
	for i := 0; i < nSteps; i++ {
		if err := m.March(ctx, date, wx, st); err != nil {
			chk.Panic("march failed at step %d: %v\n", i, err)
		}
		row := []string{strconv.Itoa(i), date.Format(time.RFC3339)}
		for _, z := range m.Zones {
			row = append(row, io.Sf("%.3f", st.Values(z.StateSlot)[0]))
		}
		if err := w.Write(row); err != nil {
			chk.Panic("writing output row failed: %v\n", err)
		}
		date = date.Add(time.Duration(m.MacroStepLength) * time.Second)
	}
}
