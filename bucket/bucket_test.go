// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 80)
	assert.Equal(t, Bucket{AllDaytimes, AllSurfaces, AllCloudTypes}, all[0])
	assert.Equal(t, Bucket{AllDaytimes, AllSurfaces, Low}, all[1])
	assert.Equal(t, Bucket{AllDaytimes, Land, AllCloudTypes}, all[5])
	assert.Equal(t, Bucket{Twilight, Ice, SemiTransparent}, all[79])
	assert.Equal(t, "TWILIGHT/ICE/SEMITRANSPARENT", all[79].String())
	assert.Equal(t, [][2]string{{"daytime", "DAY"}, {"surface", "SEA"}, {"cloudtype", "HIGH"}},
		Bucket{Day, Sea, High}.Config())
}

func TestParse(t *testing.T) {
	d, err := ParseDaytime("night")
	require.NoError(t, err)
	assert.Equal(t, Night, d)
	s, err := ParseSurface("SEA")
	require.NoError(t, err)
	assert.Equal(t, Sea, s)
	c, err := ParseCloudType("SemiTransparent")
	require.NoError(t, err)
	assert.Equal(t, SemiTransparent, c)

	_, err = ParseDaytime("dusk")
	assert.Error(t, err)
	_, err = ParseSurface("desert")
	assert.Error(t, err)
	_, err = ParseCloudType("cirrus")
	assert.Error(t, err)

	cls, err := ParseClass("nocloud")
	require.NoError(t, err)
	assert.Equal(t, NoCloud, cls)
	_, err = ParseClass("Cloud")
	assert.Error(t, err)
	assert.Equal(t, "?9", Surface(9).String())
}

func TestClass(t *testing.T) {
	for code, want := range map[int]Class{
		0: Cloud, 1: Cloud,
		2: NoCloud, 3: NoCloud, 4: NoCloud,
		5: Unlabeled, 6: Unlabeled, 7: Unlabeled, -1: Unlabeled, 8: Unlabeled,
	} {
		if got := (Pixel{Surface: code}).Class(); got != want {
			t.Errorf("surface %d: got %v, want %v", code, got, want)
		}
	}
}

func TestAdmits(t *testing.T) {
	check := func(b Bucket, p Pixel, want bool) {
		t.Helper()
		if got := b.Admits(p); got != want {
			t.Errorf("%v admits %+v: got %v, want %v", b, p, got, want)
		}
	}
	clearSeaDay := Pixel{Surface: 2, Daytime: 1}
	highCloudNight := Pixel{Surface: 0, Daytime: 2, CloudHeight: 3}
	thinCloudDay := Pixel{Surface: 1, Daytime: 1, CloudHeight: 1}

	check(Bucket{}, clearSeaDay, true)
	check(Bucket{}, highCloudNight, true)

	// Daytime applies to both classes.
	check(Bucket{Daytime: Day}, clearSeaDay, true)
	check(Bucket{Daytime: Day}, highCloudNight, false)
	check(Bucket{Daytime: Twilight}, clearSeaDay, false)

	// Surface applies only to clear pixels.
	check(Bucket{Surface: Sea}, clearSeaDay, true)
	check(Bucket{Surface: Land}, clearSeaDay, false)
	check(Bucket{Surface: Land}, highCloudNight, true)
	check(Bucket{Surface: Sea}, Pixel{Surface: 5}, true)
	check(Bucket{Surface: Ice}, Pixel{Surface: 7}, true)

	// Cloud type applies only to clouds.
	check(Bucket{CloudType: High}, highCloudNight, true)
	check(Bucket{CloudType: Low}, highCloudNight, false)
	check(Bucket{CloudType: Low}, clearSeaDay, true)
	check(Bucket{CloudType: MidLevel}, Pixel{Surface: 0, CloudHeight: 2}, true)
	check(Bucket{CloudType: SemiTransparent}, thinCloudDay, true)
	check(Bucket{CloudType: SemiTransparent}, highCloudNight, false)

	check(Bucket{Day, Land, Low}, thinCloudDay, true)
}
