/*
 * input_test.go, part of goavo.
 *
 *
 * Copyright 2024 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package yaehmop

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/rmera/goavo/crystal"
	"github.com/rmera/goavo/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMain(m *testing.M) {
	Logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func salt(Te *testing.T, withCell bool) *crystal.Molecule {
	coords := mat.NewDense(2, 3, []float64{
		0, 0, 0,
		2, 1e-9, 1e-7,
	})
	var cell *crystal.Cell
	if withCell {
		cell = crystal.NewCell([3]float64{4, 0, 0}, [3]float64{0, 4, 0}, [3]float64{0, 0, 4})
	}
	mol, err := crystal.NewMolecule("NaCl", []int{11, 17}, coords, cell)
	require.NoError(Te, err)
	return mol
}

func TestOverlap(Te *testing.T) {
	cases := map[float64]int{
		4.0:  5,
		10:   3,
		6.9:  3,
		6.6:  4,
		20:   3,
		1:    20,
		0:    3,
		-2.0: 3,
	}
	for length, want := range cases {
		assert.Equal(Te, want, Overlap(length), "length %v", length)
	}
}

func TestFormatNum(Te *testing.T) {
	assert.Equal(Te, "0", formatNum(1e-9))
	assert.Equal(Te, "0", formatNum(-1e-9))
	assert.Equal(Te, "1e-07", formatNum(1e-7))
	//the threshold itself is kept, for atoms and lattice vectors alike
	assert.Equal(Te, "1e-08", formatNum(1e-8))
	assert.Equal(Te, "-1e-08", formatNum(-1e-8))
	assert.Equal(Te, "2.82", formatNum(2.82))
	assert.Equal(Te, "-0.5", formatNum(-0.5))
}

func TestBuildInput(Te *testing.T) {
	S := DefaultSettings()
	S.SpecialKPoints = "GM 0 0 0\nX 0.5 0 0"
	input, err := BuildInput("NaCl", salt(Te, true), S)
	require.NoError(Te, err)
	want := `NaCl
Geometry
6
1 Na 0 0 0
2 Cl 2 0 1e-07
3 & 0 0 0
4 & 4 0 0
5 & 0 4 0
6 & 0 0 4
lattice
3
5 5 5
3 4
3 5
3 6
Band
40
2
GM 0 0 0
X 0.5 0 0
`
	assert.Equal(Te, want, string(input))
}

func TestBuildInputLowDim(Te *testing.T) {
	S := DefaultSettings()
	S.NumDim = 1
	S.NumBandKPoints = 10
	S.SpecialKPoints = "GM 0 0 0\r\n\r\nX 0.5 0 0\n\n"
	input, err := BuildInput("", salt(Te, true), S)
	require.NoError(Te, err)
	want := `Title
Geometry
4
1 Na 0 0 0
2 Cl 2 0 1e-07
3 & 0 0 0
4 & 4 0 0
lattice
1
5
3 4
Band
10
2
GM 0 0 0` + "\r\n\r\nX 0.5 0 0\n\n"
	assert.Equal(Te, want, string(input))
}

func TestBuildInputPreconditions(Te *testing.T) {
	_, err := BuildInput("x", nil, DefaultSettings())
	assert.True(Te, errors.Is(err, ErrNoMolecule))
	_, err = BuildInput("x", salt(Te, false), DefaultSettings())
	assert.True(Te, errors.Is(err, ErrNoCell))
	var ye *Error
	require.True(Te, errors.As(err, &ye))
	assert.Equal(Te, []string{"GeometryAndLattice", "BuildInput"}, ye.Decorate(""))
	assert.Equal(Te, "NaCl", ye.InputName())
}

func TestSettingsRoundTrip(Te *testing.T) {
	store := settings.NewMemory()
	S := LoadSettings(store)
	assert.Equal(Te, DefaultSettings(), S)
	S.NumBandKPoints = 60
	S.LimitY = true
	S.MinY, S.MaxY = 5, -20
	S.PlotFermi = true
	S.Fermi = -8.5
	S.NumDim = 2
	S.SpecialKPoints = "GM 0 0 0"
	require.NoError(Te, S.Save(store))
	back := LoadSettings(store)
	S.Check()
	assert.Equal(Te, S, back)
	assert.Equal(Te, -20.0, back.MinY)
	assert.Equal(Te, 60, settings.Int(store, "yaehmop/bandOptions/numBandKPoints", 0))

	store.SetValue("yaehmop/general/numDim", 7)
	assert.Equal(Te, 3, LoadSettings(store).NumDim)
}

func TestSettingsEmptyEnergyRange(Te *testing.T) {
	S := DefaultSettings()
	S.LimitY = true
	S.Check()
	assert.False(Te, S.LimitY, "MinY == MaxY == 0 is no limit")

	S.LimitY, S.MinY, S.MaxY = true, -4, -4
	S.Check()
	assert.False(Te, S.LimitY)

	S.LimitY, S.MinY, S.MaxY = true, -4, 2
	S.Check()
	assert.True(Te, S.LimitY)
}
