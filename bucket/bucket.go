// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bucket defines the daytime, surface and cloud type filters
// under which cloud and clear pixels are compared, and the pixel
// classification codes they are evaluated on.
//
// Surface codes:
//
//	0      cloud
//	1      semi-transparent cloud (also a cloud)
//	2 3 4  clear ocean, land, ice
//	5 6 7  ocean, land, ice (admitted by surface filters, never clear)
//
// Daytime codes are 1 day, 2 night, 3 twilight. Cloud height codes
// are 1 low, 2 mid level, 3 high.
package bucket

import (
	"fmt"
	"strings"
)

// Daytime selects pixels by illumination.
type Daytime int

const (
	AllDaytimes Daytime = iota
	Day
	Night
	Twilight
)

var daytimeNames = []string{"ALL", "DAY", "NIGHT", "TWILIGHT"}

func (d Daytime) String() string { return name(daytimeNames, int(d)) }

// Surface selects clear pixels by surface type.
type Surface int

const (
	AllSurfaces Surface = iota
	Land
	Sea
	Ice
)

var surfaceNames = []string{"ALL", "LAND", "SEA", "ICE"}

func (s Surface) String() string { return name(surfaceNames, int(s)) }

// CloudType selects cloud pixels by cloud type.
type CloudType int

const (
	AllCloudTypes CloudType = iota
	Low
	MidLevel
	High
	SemiTransparent
)

var cloudTypeNames = []string{"ALL", "LOW", "MIDLEVEL", "HIGH", "SEMITRANSPARENT"}

func (c CloudType) String() string { return name(cloudTypeNames, int(c)) }

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("?%d", i)
	}
	return names[i]
}

func parse(names []string, kind, s string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s filter %q", kind, s)
}

// ParseDaytime parses a daytime filter name such as "NIGHT".
func ParseDaytime(s string) (Daytime, error) {
	i, err := parse(daytimeNames, "daytime", s)
	return Daytime(i), err
}

// ParseSurface parses a surface filter name such as "SEA".
func ParseSurface(s string) (Surface, error) {
	i, err := parse(surfaceNames, "surface", s)
	return Surface(i), err
}

// ParseCloudType parses a cloud type filter name such as "HIGH".
func ParseCloudType(s string) (CloudType, error) {
	i, err := parse(cloudTypeNames, "cloud type", s)
	return CloudType(i), err
}

// A Bucket is one combination of filters.
type Bucket struct {
	Daytime   Daytime
	Surface   Surface
	CloudType CloudType
}

// All returns every bucket, varying cloud type fastest and daytime
// slowest.
func All() []Bucket {
	var out []Bucket
	for d := range daytimeNames {
		for s := range surfaceNames {
			for c := range cloudTypeNames {
				out = append(out, Bucket{Daytime(d), Surface(s), CloudType(c)})
			}
		}
	}
	return out
}

func (b Bucket) String() string {
	return b.Daytime.String() + "/" + b.Surface.String() + "/" + b.CloudType.String()
}

// Config returns the bucket as file configuration key/value pairs,
// in the order daytime, surface, cloudtype.
func (b Bucket) Config() [][2]string {
	return [][2]string{
		{"daytime", b.Daytime.String()},
		{"surface", b.Surface.String()},
		{"cloudtype", b.CloudType.String()},
	}
}

// A Class is the label of a pixel.
type Class int

const (
	// Unlabeled pixels belong to neither class.
	Unlabeled Class = iota
	Cloud
	NoCloud
)

func (c Class) String() string {
	switch c {
	case Cloud:
		return "cloud"
	case NoCloud:
		return "nocloud"
	}
	return "unlabeled"
}

// ParseClass parses "cloud" or "nocloud".
func ParseClass(s string) (Class, error) {
	switch s {
	case "cloud":
		return Cloud, nil
	case "nocloud":
		return NoCloud, nil
	}
	return Unlabeled, fmt.Errorf("unknown class %q", s)
}

// A Pixel holds the classification codes of one pixel.
type Pixel struct {
	Surface     int
	Daytime     int
	CloudHeight int
}

// Class returns the label of p.
func (p Pixel) Class() Class {
	switch {
	case p.cloud():
		return Cloud
	case p.Surface >= 2 && p.Surface <= 4:
		return NoCloud
	}
	return Unlabeled
}

func (p Pixel) cloud() bool {
	return p.Surface == 0 || p.semiTransparent()
}

func (p Pixel) semiTransparent() bool {
	return p.Surface == 1
}

func (p Pixel) ocean() bool { return p.Surface == 2 || p.Surface == 5 }
func (p Pixel) land() bool  { return p.Surface == 3 || p.Surface == 6 }
func (p Pixel) ice() bool   { return p.Surface == 4 || p.Surface == 7 }

// Admits reports whether p passes all filters of b. Cloud pixels
// always pass the surface filter and clear pixels always pass the
// cloud type filter, so each class is filtered only by the
// attributes that describe it.
func (b Bucket) Admits(p Pixel) bool {
	return b.admitsDaytime(p) && b.admitsSurface(p) && b.admitsCloudType(p)
}

func (b Bucket) admitsDaytime(p Pixel) bool {
	switch b.Daytime {
	case AllDaytimes:
		return true
	case Day:
		return p.Daytime == 1
	case Night:
		return p.Daytime == 2
	case Twilight:
		return p.Daytime == 3
	}
	return false
}

func (b Bucket) admitsSurface(p Pixel) bool {
	if b.Surface == AllSurfaces || p.cloud() {
		return true
	}
	switch b.Surface {
	case Land:
		return p.land()
	case Sea:
		return p.ocean()
	case Ice:
		return p.ice()
	}
	return false
}

func (b Bucket) admitsCloudType(p Pixel) bool {
	if b.CloudType == AllCloudTypes || !p.cloud() {
		return true
	}
	switch b.CloudType {
	case Low:
		return p.CloudHeight == 1
	case MidLevel:
		return p.CloudHeight == 2
	case High:
		return p.CloudHeight == 3
	case SemiTransparent:
		return p.semiTransparent()
	}
	return false
}
