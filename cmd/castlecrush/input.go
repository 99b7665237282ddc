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

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	bettererrors "github.com/xtuc/better-errors"

	"github.com/vigilantdoomer/castlecrush"
)

// Segments come either as plain JSON, [[[x1,y1],[x2,y2]], ...], or as
// GeoJSON (file name ends in .geojson): LineString and MultiLineString
// geometries, bare or inside features. A LineString of more than two points
// is a chain of segments

// how far solver shots are drawn either way from their first point
const SHOT_DRAW_LENGTH = 30.0

func readSegments(path string) ([]castlecrush.Segment, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, bettererrors.
			New("Could not read segments").
			With(bettererrors.NewFromErr(err)).
			SetContext("file", path)
	}
	var segs []castlecrush.Segment
	if strings.HasSuffix(strings.ToLower(path), ".geojson") {
		segs, err = parseGeoJSON(data)
	} else {
		segs, err = parsePlainJSON(data)
	}
	if err != nil {
		return nil, bettererrors.
			New("Could not parse segments").
			With(bettererrors.NewFromErr(err)).
			SetContext("file", path)
	}
	return segs, nil
}

func parsePlainJSON(data []byte) ([]castlecrush.Segment, error) {
	var raw [][2][2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	segs := make([]castlecrush.Segment, len(raw))
	for i, r := range raw {
		segs[i] = castlecrush.Seg(r[0][0], r[0][1], r[1][0], r[1][1])
	}
	return segs, nil
}

func parseGeoJSON(data []byte) ([]castlecrush.Segment, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var geometries []geom.T
	switch head.Type {
	case "FeatureCollection":
		fc := geojson.FeatureCollection{}
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			geometries = append(geometries, f.Geometry)
		}
	case "Feature":
		f := geojson.Feature{}
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		geometries = append(geometries, f.Geometry)
	default:
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		geometries = append(geometries, g)
	}
	var segs []castlecrush.Segment
	for _, g := range geometries {
		switch t := g.(type) {
		case *geom.LineString:
			segs = appendChain(segs, t)
		case *geom.MultiLineString:
			for i := 0; i < t.NumLineStrings(); i++ {
				segs = appendChain(segs, t.LineString(i))
			}
		case nil:
		default:
			return nil, fmt.Errorf("unsupported geometry %T, only LineString and MultiLineString are", g)
		}
	}
	return segs, nil
}

func appendChain(segs []castlecrush.Segment, ls *geom.LineString) []castlecrush.Segment {
	for i := 0; i+1 < ls.NumCoords(); i++ {
		a, b := ls.Coord(i), ls.Coord(i+1)
		segs = append(segs, castlecrush.Seg(a.X(), a.Y(), b.X(), b.Y()))
	}
	return segs
}

func intersectionsToGeoJSON(res []castlecrush.Intersection) ([]byte, error) {
	coords := make([]geom.Coord, len(res))
	for i, x := range res {
		coords[i] = geom.Coord{x.Point.X(), x.Point.Y()}
	}
	mp, err := geom.NewMultiPoint(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	return geojson.Marshal(mp)
}

func shotsToGeoJSON(shots []castlecrush.Line) ([]byte, error) {
	coords := make([][]geom.Coord, len(shots))
	for i, s := range shots {
		d := s.Direction().Normalize().Mul(SHOT_DRAW_LENGTH)
		a := s.P1.Sub(d)
		b := s.P1.Add(d)
		coords[i] = []geom.Coord{{a.X(), a.Y()}, {b.X(), b.Y()}}
	}
	mls, err := geom.NewMultiLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	return geojson.Marshal(mls)
}
