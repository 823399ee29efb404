/*
 * output.go, part of goavo.
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
	"fmt"
	"math"
	"strconv"
	"strings"
)

//SpecialPoint is a labeled vertex of the k-point path.
type SpecialPoint struct {
	Label string
	K     [3]float64
}

//Bands is the band data printed by YAeHMOP.
type Bands struct {
	SpecialPoints []SpecialPoint
	KPoints       [][3]float64
	//Energies[i][j] is the energy of orbital j at k point i, in eV.
	Energies    [][]float64
	NumOrbitals int
}

//The band block printed in stdin/stdout mode looks like this:
//
//	#BAND_DATA
//	5 special points
//	166 k points
//	8 orbitals
//	GM 0.0000 0.0000 0.0000
//	...
//	Begin band data.
//	K point 1: 0.000000 0.000000 0.000000
//	-20.1234
//	...
//	End band data.

type lineReader struct {
	lines []string
	pos   int
}

func (L *lineReader) next() (string, bool) {
	for L.pos < len(L.lines) {
		l := strings.TrimSpace(L.lines[L.pos])
		L.pos++
		if l != "" {
			return l, true
		}
	}
	return "", false
}

func badOutput(format string, v ...any) *Error {
	return newError(ErrBadOutput, "", "", fmt.Sprintf(format, v...), "ParseBands")
}

//countLine reads lines like "5 special points" and returns 5.
func (L *lineReader) countLine(what string) (int, error) {
	l, ok := L.next()
	if !ok {
		return 0, badOutput("missing the number of %s", what)
	}
	fields := strings.Fields(l)
	if len(fields) < 2 || !strings.Contains(strings.ToLower(l), what) {
		return 0, badOutput("expected the number of %s, got %q", what, l)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, badOutput("bad number of %s in %q", what, l)
	}
	return n, nil
}

func parseVec(fields []string) ([3]float64, error) {
	var v [3]float64
	if len(fields) < 3 {
		return v, fmt.Errorf("need 3 numbers, got %d", len(fields))
	}
	var err error
	for i := 0; i < 3; i++ {
		v[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, err
		}
	}
	return v, nil
}

//ParseBands reads the band data from the output of a band structure run.
func ParseBands(output []byte) (*Bands, error) {
	all := strings.FieldsFunc(string(output), func(r rune) bool { return r == '\n' || r == '\r' })
	start := -1
	for i, l := range all {
		if strings.Contains(strings.ToUpper(l), "#BAND_DATA") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, badOutput("no #BAND_DATA block in the output")
	}
	L := &lineReader{lines: all, pos: start}
	nspecial, err := L.countLine("special points")
	if err != nil {
		return nil, err
	}
	nk, err := L.countLine("k points")
	if err != nil {
		return nil, err
	}
	norb, err := L.countLine("orbitals")
	if err != nil {
		return nil, err
	}
	B := &Bands{
		SpecialPoints: make([]SpecialPoint, 0, nspecial),
		KPoints:       make([][3]float64, 0, nk),
		Energies:      make([][]float64, 0, nk),
		NumOrbitals:   norb,
	}
	for i := 0; i < nspecial; i++ {
		l, ok := L.next()
		if !ok {
			return nil, badOutput("expected %d special points, got %d", nspecial, i)
		}
		fields := strings.Fields(l)
		if len(fields) < 4 {
			return nil, badOutput("bad special point line %q", l)
		}
		k, err := parseVec(fields[1:])
		if err != nil {
			return nil, badOutput("special point %q: %v", l, err)
		}
		B.SpecialPoints = append(B.SpecialPoints, SpecialPoint{Label: fields[0], K: k})
	}
	l, ok := L.next()
	if !ok || !strings.HasPrefix(strings.ToLower(l), "begin band data") {
		return nil, badOutput("expected \"Begin band data.\", got %q", l)
	}
	for i := 0; i < nk; i++ {
		l, ok := L.next()
		if !ok {
			return nil, badOutput("expected %d k points, got %d", nk, i)
		}
		colon := strings.IndexByte(l, ':')
		if !strings.HasPrefix(strings.ToLower(l), "k point") || colon < 0 {
			return nil, badOutput("expected a k point line, got %q", l)
		}
		k, err := parseVec(strings.Fields(l[colon+1:]))
		if err != nil {
			return nil, badOutput("k point %d: %v", i+1, err)
		}
		energies := make([]float64, norb)
		for j := range energies {
			e, ok := L.next()
			if !ok {
				return nil, badOutput("k point %d: expected %d energies, got %d", i+1, norb, j)
			}
			energies[j], err = strconv.ParseFloat(strings.Fields(e)[0], 64)
			if err != nil {
				return nil, badOutput("k point %d: energy %d: %v", i+1, j+1, err)
			}
		}
		B.KPoints = append(B.KPoints, k)
		B.Energies = append(B.Energies, energies)
	}
	if l, ok := L.next(); !ok || !strings.HasPrefix(strings.ToLower(l), "end band data") {
		return nil, badOutput("expected \"End band data.\", got %q", l)
	}
	return B, nil
}

//SpecialIndexes returns, for each special point, the index of the k point
//where the path goes through it, or -1 if it never does. Points are
//matched in order, so a path that comes back to GM finds the second GM
//after the first.
func (B *Bands) SpecialIndexes() []int {
	const tol = 1e-4
	ret := make([]int, len(B.SpecialPoints))
	from := 0
	for i, sp := range B.SpecialPoints {
		ret[i] = -1
		for j := from; j < len(B.KPoints); j++ {
			k := B.KPoints[j]
			if math.Abs(k[0]-sp.K[0]) < tol && math.Abs(k[1]-sp.K[1]) < tol && math.Abs(k[2]-sp.K[2]) < tol {
				ret[i] = j
				from = j + 1
				break
			}
		}
	}
	return ret
}

//Table returns the bands in columns: the first slice is the k point
//index, and the slice i+1 holds the energy of orbital i at each k point,
//minus shift.
func (B *Bands) Table(shift float64) [][]float64 {
	data := make([][]float64, B.NumOrbitals+1)
	for i := range data {
		data[i] = make([]float64, len(B.KPoints))
	}
	for k, e := range B.Energies {
		data[0][k] = float64(k)
		for o, v := range e {
			data[o+1][k] = v - shift
		}
	}
	return data
}

//String returns the band data as a whitespace-separated table, one k point per line.
func (B *Bands) String() string {
	var b strings.Builder
	for k, e := range B.Energies {
		b.WriteString(strconv.Itoa(k))
		for _, v := range e {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(v, 'f', 4, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
