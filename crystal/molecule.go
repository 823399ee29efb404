/*
 * molecule.go, part of goavo.
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

//Package crystal provides molecules with an optional unit cell, an element
//table and a reader for (extended) XYZ files carrying the lattice.
package crystal

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Molecule is a set of atoms, given by their atomic numbers, with Cartesian
//coordinates (one row per atom) and, for periodic systems, a unit cell.
type Molecule struct {
	Name   string
	Atomic []int
	Coords *mat.Dense
	Cell   *Cell //nil for non-periodic systems
}

//NewMolecule returns a molecule with the given atomic numbers and coordinates.
//coords must have one row per atom and 3 columns.
func NewMolecule(name string, atomic []int, coords *mat.Dense, cell *Cell) (*Molecule, error) {
	if coords == nil {
		return nil, fmt.Errorf("crystal: nil coordinates for %q", name)
	}
	r, c := coords.Dims()
	if c != 3 || r != len(atomic) {
		return nil, fmt.Errorf("crystal: %d atoms but a %dx%d coordinate matrix", len(atomic), r, c)
	}
	return &Molecule{Name: name, Atomic: atomic, Coords: coords, Cell: cell}, nil
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atomic)
}

//Symbol returns the element symbol of the ith atom.
func (M *Molecule) Symbol(i int) string {
	return Symbol(M.Atomic[i])
}

//Position returns the coordinates of the ith atom.
func (M *Molecule) Position(i int) [3]float64 {
	var v [3]float64
	mat.Row(v[:], i, M.Coords)
	return v
}

//Periodic returns true if the molecule has a unit cell.
func (M *Molecule) Periodic() bool {
	return M != nil && M.Cell != nil
}
