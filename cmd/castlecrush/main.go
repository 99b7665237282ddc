// Copyright (C) 2025, VigilantDoomer
//
// This file is part of CastleCrush program.
//
// CastleCrush is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// CastleCrush is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CastleCrush.  If not, see <https://www.gnu.org/licenses/>.

// castlecrush command line tool: runs the sweep and the shot solver on
// segments from a file, and generates endless mode levels in bulk
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/urfave/cli"
	bettererrors "github.com/xtuc/better-errors"

	"github.com/vigilantdoomer/castlecrush"
)

// Results go here when no output file is given
var stdout io.Writer = os.Stdout

func main() {
	app := makeapp()
	if err := app.Run(os.Args); err != nil {
		failWith(err)
	}
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "castlecrush"
	app.Usage = "Castle Crushers geometric core"
	app.Version = castlecrush.VERSION
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "verbose, v", Value: 0, Usage: "Verbosity level (0-2)"},
		cli.StringFlag{Name: "log", Value: "", Usage: "Write log messages and errors to `FILE` instead of the console"},
		cli.StringFlag{Name: "dump-status", Value: "", Usage: "Dump sweep status after every event into `FILE` (very noisy)"},
		cli.BoolFlag{Name: "color", Usage: "Color error messages"},
	}
	var logFile *os.File
	app.Before = func(c *cli.Context) error {
		cfg := castlecrush.DefaultConfig()
		cfg.VerbosityLevel = c.Int("verbose")
		cfg.DumpStatus = c.String("dump-status") != ""
		cfg.ColorErrors = c.Bool("color")
		castlecrush.SetConfig(cfg)
		if path := c.String("log"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return bettererrors.
					New("Could not open log file").
					With(bettererrors.NewFromErr(err)).
					SetContext("file", path)
			}
			logFile = f
			castlecrush.Log.Redirect(f, f)
		}
		return nil
	}
	app.After = func(c *cli.Context) error {
		castlecrush.Log.Sync()
		if logFile != nil {
			castlecrush.Log.Redirect(os.Stdout, os.Stderr)
			logFile.Close()
			logFile = nil
		}
		if path := c.String("dump-status"); path != "" {
			return writeOutput(path, []byte(castlecrush.Log.GetDumpedStatus()))
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:      "sweep",
			Usage:     "Find all intersections between segments",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "geojson", Usage: "Output intersection points as GeoJSON MultiPoint"},
				cli.BoolFlag{Name: "trace", Usage: "Print every processed sweep event"},
			},
			Action: func(c *cli.Context) error {
				return sweepAction(c.Args().First(), c.Bool("geojson"), c.Bool("trace"))
			},
		},
		{
			Name:      "solve",
			Usage:     "Find a small set of shots crossing every segment",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "geojson", Usage: "Output shots as GeoJSON MultiLineString"},
			},
			Action: func(c *cli.Context) error {
				return solveAction(c.Args().First(), c.Bool("geojson"))
			},
		},
		{
			Name:      "check",
			Usage:     "Compare sweep results against brute force",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				return checkAction(c.Args().First())
			},
		},
		{
			Name:  "generate",
			Usage: "Generate endless mode levels",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "stage", Value: 0, Usage: "First stage to generate"},
				cli.IntFlag{Name: "count", Value: 1, Usage: "Number of levels (consecutive stages)"},
				cli.Int64Flag{Name: "seed", Value: 0, Usage: "Random seed (0 = current time)"},
				cli.StringFlag{Name: "out", Value: "", Usage: "Output file (default: stdout)"},
			},
			Action: func(c *cli.Context) error {
				return generateAction(c.Int("stage"), c.Int("count"), c.Int64("seed"), c.String("out"))
			},
		},
	}
	return app
}

func requireFile(path string) error {
	if path == "" {
		return bettererrors.New("Input file not specified")
	}
	return nil
}

func sweepAction(path string, asGeoJSON bool, trace bool) error {
	if err := requireFile(path); err != nil {
		return err
	}
	segs, err := readSegments(path)
	if err != nil {
		return err
	}
	sweep := castlecrush.NewSweepLine(segs)
	if trace {
		sweep.Trace = func(ev castlecrush.SweepEvent) {
			castlecrush.Log.Printf("%s\n", ev.String())
		}
	}
	start := time.Now()
	res, err := sweep.Run()
	if err != nil {
		return bettererrors.
			New("Sweep failed").
			With(bettererrors.NewFromErr(err)).
			SetContext("file", path)
	}
	castlecrush.Log.Verbose(1, "Sweep took %s\n", time.Since(start))
	if asGeoJSON {
		data, err := intersectionsToGeoJSON(res)
		if err != nil {
			return bettererrors.NewFromErr(err)
		}
		return writeOutput("", data)
	}
	return writeJSON("", res)
}

func solveAction(path string, asGeoJSON bool) error {
	if err := requireFile(path); err != nil {
		return err
	}
	segs, err := readSegments(path)
	if err != nil {
		return err
	}
	solver, err := castlecrush.NewShotSolver(segs)
	if err != nil {
		return bettererrors.
			New("Could not set up shot solver").
			With(bettererrors.NewFromErr(err)).
			SetContext("file", path)
	}
	shots := solver.GreedyCover()
	castlecrush.Log.Verbose(1, "%d segments, %d candidate shots, %d shots picked\n",
		len(segs), solver.Candidates(), len(shots))
	if asGeoJSON {
		data, err := shotsToGeoJSON(shots)
		if err != nil {
			return bettererrors.NewFromErr(err)
		}
		return writeOutput("", data)
	}
	return writeJSON("", shots)
}

func checkAction(path string) error {
	if err := requireFile(path); err != nil {
		return err
	}
	segs, err := readSegments(path)
	if err != nil {
		return err
	}
	res, err := castlecrush.FindIntersections(segs)
	if err != nil {
		return bettererrors.
			New("Sweep failed").
			With(bettererrors.NewFromErr(err)).
			SetContext("file", path)
	}
	want := castlecrush.FindCrossings(segs)
	missing, extra := castlecrush.DiffIntersections(res, want)
	if len(missing) == 0 && len(extra) == 0 {
		castlecrush.Log.Printf("OK: %d intersections\n", len(res))
		return nil
	}
	for _, x := range missing {
		castlecrush.Log.Error("missed: #%d x #%d\n", x.One, x.Two)
	}
	for _, x := range extra {
		castlecrush.Log.Error("spurious: #%d x #%d\n", x.One, x.Two)
	}
	return bettererrors.
		New("Sweep disagrees with brute force").
		SetContext("file", path).
		SetContext("missed", fmt.Sprintf("%d", len(missing))).
		SetContext("spurious", fmt.Sprintf("%d", len(extra)))
}

func generateAction(stage, count int, seed int64, out string) error {
	if count <= 0 {
		return bettererrors.New("Level count must be positive")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	castlecrush.Log.Verbose(1, "Generating %d levels from stage %d, seed %d\n", count, stage, seed)
	gen := castlecrush.NewLevelGenerator(castlecrush.DefaultLevelConfig(), rand.NewSource(seed))
	levels := make([]*castlecrush.Level, 0, count)
	var bar *pb.ProgressBar
	if count > 1 {
		bar = pb.New(count)
		bar.Output = os.Stderr
		bar.SetWidth(80)
		bar.Start()
	}
	for i := 0; i < count; i++ {
		lvl, err := gen.ForStage(stage + i)
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			return bettererrors.
				New("Could not generate level").
				With(bettererrors.NewFromErr(err)).
				SetContext("stage", fmt.Sprintf("%d", stage+i)).
				SetContext("seed", fmt.Sprintf("%d", seed))
		}
		levels = append(levels, lvl)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return writeJSON(out, levels)
}

func writeJSON(out string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return bettererrors.NewFromErr(err)
	}
	return writeOutput(out, append(data, '\n'))
}

func writeOutput(out string, data []byte) error {
	if out == "" {
		_, err := stdout.Write(data)
		if err != nil {
			return bettererrors.NewFromErr(err)
		}
		return nil
	}
	if err := ioutil.WriteFile(out, data, 0644); err != nil {
		return bettererrors.
			New("Could not write output").
			With(bettererrors.NewFromErr(err)).
			SetContext("file", out)
	}
	return nil
}
