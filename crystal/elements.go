/*
 * elements.go, part of goavo.
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

package crystal

//symbols is indexed by atomic number. Index 0 is the placeholder
//used for anything we can't identify.
var symbols = [...]string{
	"Xx",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba",
	"La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb", "Lu",
	"Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra",
	"Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm", "Md", "No", "Lr",
	"Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds", "Rg", "Cn",
	"Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for z, s := range symbols {
		if z == 0 {
			continue
		}
		m[s] = z
	}
	return m
}()

//Symbol returns the element symbol for the atomic number z,
//or "Xx" if z is not a known element.
func Symbol(z int) string {
	if z <= 0 || z >= len(symbols) {
		return symbols[0]
	}
	return symbols[z]
}

//AtomicNumber returns the atomic number for the element symbol s.
//The second return value is false if the symbol is unknown.
//The lookup is case-tolerant ("FE", "fe" and "Fe" all work).
func AtomicNumber(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	norm := []byte(s)
	if norm[0] >= 'a' && norm[0] <= 'z' {
		norm[0] -= 'a' - 'A'
	}
	for i := 1; i < len(norm); i++ {
		if norm[i] >= 'A' && norm[i] <= 'Z' {
			norm[i] += 'a' - 'A'
		}
	}
	z, ok := atomicNumbers[string(norm)]
	return z, ok
}
