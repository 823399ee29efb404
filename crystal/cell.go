/*
 * cell.go, part of goavo.
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

package crystal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Cell is a unit cell. The rows of the underlying 3x3 matrix are the
//lattice vectors a, b and c, in the same length units as the coordinates
//of the molecule that owns the cell (normally Angstroms).
type Cell struct {
	m *mat.Dense
}

//NewCell returns a cell with the lattice vectors a, b and c.
func NewCell(a, b, c [3]float64) *Cell {
	data := make([]float64, 0, 9)
	data = append(data, a[:]...)
	data = append(data, b[:]...)
	data = append(data, c[:]...)
	return &Cell{m: mat.NewDense(3, 3, data)}
}

//CellFromMatrix returns a cell from a 3x3 matrix whose rows are the lattice vectors.
//The matrix is copied.
func CellFromMatrix(m mat.Matrix) (*Cell, error) {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return nil, fmt.Errorf("crystal: cell matrix must be 3x3, got %dx%d", r, c)
	}
	return &Cell{m: mat.DenseCopyOf(m)}, nil
}

//Vector returns a copy of the ith lattice vector (0 is a, 1 is b and 2 is c).
//It panics if i is out of range.
func (L *Cell) Vector(i int) [3]float64 {
	if i < 0 || i > 2 {
		panic(fmt.Sprintf("crystal: lattice vector index %d out of range", i))
	}
	var v [3]float64
	mat.Row(v[:], i, L.m)
	return v
}

func (L *Cell) length(i int) float64 {
	v := L.Vector(i)
	return floats.Norm(v[:], 2)
}

//A returns the length of the first lattice vector.
func (L *Cell) A() float64 { return L.length(0) }

//B returns the length of the second lattice vector.
func (L *Cell) B() float64 { return L.length(1) }

//C returns the length of the third lattice vector.
func (L *Cell) C() float64 { return L.length(2) }

//Lengths returns the lengths of the three lattice vectors.
func (L *Cell) Lengths() [3]float64 {
	return [3]float64{L.A(), L.B(), L.C()}
}

//Volume returns the (absolute) volume of the cell.
func (L *Cell) Volume() float64 {
	return math.Abs(mat.Det(L.m))
}

func (L *Cell) String() string {
	return fmt.Sprintf("%v", mat.Formatted(L.m, mat.Squeeze()))
}
