/*
 * input.go, part of goavo.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package yaehmop

import (
	"math"
	"strconv"
	"strings"

	"github.com/rmera/goavo/crystal"
)

//Anything smaller than this, in absolute value, is written as 0.
const minNum = 1e-8

//YAeHMOP wants numOverlaps*latticeVectorLength to be between 10 and 20 Angstroms.
//We use at least minOverlaps and then more until the product reaches overlapLength.
const (
	minOverlaps   = 3
	overlapLength = 20.0
)

//dummySymbol is the symbol YAeHMOP uses for dummy atoms.
const dummySymbol = "&"

//Overlap returns the number of overlaps for a lattice vector of the given
//length: the smallest integer, not below 3, such that overlaps*length >= 20.
func Overlap(length float64) int {
	n := minOverlaps
	if length <= 0 || math.IsNaN(length) {
		return n
	}
	for float64(n)*length < overlapLength {
		n++
	}
	return n
}

//formatNum writes v in its shortest form, or 0 if v is tiny.
func formatNum(v float64) string {
	if math.Abs(v) < minNum {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeVec(b *strings.Builder, v [3]float64) {
	for j, c := range v {
		if j > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNum(c))
	}
	b.WriteByte('\n')
}

//GeometryAndLattice returns the Geometry and lattice sections of a YAeHMOP input for mol,
//with numDim periodic dimensions. The lattice is given with dummy atoms: one at the origin
//and one at the tip of each lattice vector. Each lattice direction is then defined by a
//pair of atom indexes (origin dummy, tip dummy).
func GeometryAndLattice(mol *crystal.Molecule, numDim int) (string, error) {
	if mol == nil {
		return "", newError(ErrNoMolecule, "", "", "", "GeometryAndLattice")
	}
	if mol.Cell == nil {
		return "", newError(ErrNoCell, "", mol.Name, "", "GeometryAndLattice")
	}
	if numDim < 1 || numDim > 3 {
		numDim = defNumDim
	}
	natoms := mol.Len()
	var b strings.Builder
	b.WriteString("Geometry\n")
	//the atoms plus numDim+1 dummies
	b.WriteString(strconv.Itoa(natoms + numDim + 1))
	b.WriteByte('\n')
	for i := 0; i < natoms; i++ {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte(' ')
		b.WriteString(mol.Symbol(i))
		b.WriteByte(' ')
		writeVec(&b, mol.Position(i))
	}
	origin := natoms + 1
	b.WriteString(strconv.Itoa(origin) + " " + dummySymbol + " 0 0 0\n")
	for i := 0; i < numDim; i++ {
		b.WriteString(strconv.Itoa(origin+i+1) + " " + dummySymbol + " ")
		writeVec(&b, mol.Cell.Vector(i))
	}

	lengths := mol.Cell.Lengths()
	b.WriteString("lattice\n")
	b.WriteString(strconv.Itoa(numDim) + "\n")
	for i := 0; i < numDim; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(Overlap(lengths[i])))
	}
	b.WriteByte('\n')
	for i := 0; i < numDim; i++ {
		b.WriteString(strconv.Itoa(origin) + " " + strconv.Itoa(origin+i+1) + "\n")
	}
	return b.String(), nil
}

//specialKPointLines returns the non-empty lines of the special k points text.
func specialKPointLines(text string) []string {
	f := func(r rune) bool { return r == '\n' || r == '\r' }
	lines := strings.FieldsFunc(text, f)
	ret := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			ret = append(ret, l)
		}
	}
	return ret
}

//BandSection returns the Band section of the input: the number of k points
//between special points, the number of special points, and the special
//points as the user wrote them.
func BandSection(S Settings) string {
	var b strings.Builder
	b.WriteString("Band\n")
	b.WriteString(strconv.Itoa(S.NumBandKPoints) + "\n")
	b.WriteString(strconv.Itoa(len(specialKPointLines(S.SpecialKPoints))) + "\n")
	b.WriteString(S.SpecialKPoints)
	if !strings.HasSuffix(S.SpecialKPoints, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}

//BuildInput returns the complete YAeHMOP input for a band structure calculation
//on mol. An empty title is replaced by "Title".
func BuildInput(title string, mol *crystal.Molecule, S Settings) ([]byte, error) {
	title = strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	if title == "" {
		title = "Title"
	}
	geo, err := GeometryAndLattice(mol, S.NumDim)
	if err != nil {
		err.(*Error).Decorate("BuildInput")
		return nil, err
	}
	return []byte(title + "\n" + geo + BandSection(S)), nil
}
