/*
 * xyz.go, part of goavo.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"gonum.org/v1/gonum/mat"
)

//ReadXYZFile reads the first frame of an XYZ file. Files ending in ".zst" (zstd)
//or ".lz4" (lz4 frames) are decompressed on the fly.
func ReadXYZFile(name string) (*Molecule, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("crystal: can't decompress %s: %w", name, err)
		}
		defer dec.Close()
		r = dec
	} else if strings.HasSuffix(name, ".lz4") {
		r = lz4.NewReader(f)
	}
	mol, err := ReadXYZ(r)
	if err != nil {
		return nil, fmt.Errorf("crystal: %s: %w", name, err)
	}
	if mol.Name == "" {
		base := filepath.Base(name)
		base = strings.TrimSuffix(strings.TrimSuffix(base, ".zst"), ".lz4")
		mol.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return mol, nil
}

//ReadXYZ reads the first frame of an XYZ stream. The comment line can carry
//extended-XYZ key=value pairs. Lattice="ax ay az bx by bz cx cy cz" sets the unit cell,
//and name="..." (or Name=) sets the molecule name. The element column can hold symbols
//or atomic numbers.
func ReadXYZ(r io.Reader) (*Molecule, error) {
	xyz := bufio.NewScanner(r)
	if !xyz.Scan() {
		return nil, fmt.Errorf("ill formatted XYZ: empty input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(xyz.Text()))
	if err != nil || natoms < 0 {
		return nil, fmt.Errorf("ill formatted XYZ: bad atom count %q", xyz.Text())
	}
	if !xyz.Scan() {
		return nil, fmt.Errorf("ill formatted XYZ: missing comment line")
	}
	pairs := parseComment(xyz.Text())
	atomic := make([]int, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		if !xyz.Scan() {
			return nil, fmt.Errorf("ill formatted XYZ: expected %d atoms, got %d", natoms, i)
		}
		fields := strings.Fields(xyz.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("ill formatted XYZ: line %d for atom %d has %d fields", i+3, i+1, len(fields))
		}
		z, ok := AtomicNumber(fields[0])
		if !ok {
			z, err = strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("ill formatted XYZ: unknown element %q for atom %d", fields[0], i+1)
			}
		}
		atomic[i] = z
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("ill formatted XYZ: atom %d: %w", i+1, err)
			}
		}
	}
	if err := xyz.Err(); err != nil {
		return nil, err
	}
	var cm *mat.Dense
	if natoms > 0 {
		cm = mat.NewDense(natoms, 3, coords)
	} else {
		//gonum doesn't allow zero-sized matrices.
		cm = &mat.Dense{}
	}
	mol := &Molecule{Atomic: atomic, Coords: cm}
	mol.Name = pairs["name"]
	if lat, ok := pairs["lattice"]; ok {
		mol.Cell, err = parseLattice(lat)
		if err != nil {
			return nil, err
		}
	}
	return mol, nil
}

func parseLattice(s string) (*Cell, error) {
	fields := strings.Fields(s)
	if len(fields) != 9 {
		return nil, fmt.Errorf("ill formatted XYZ: Lattice needs 9 numbers, got %d", len(fields))
	}
	data := make([]float64, 9)
	var err error
	for i, v := range fields {
		data[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("ill formatted XYZ: Lattice: %w", err)
		}
	}
	return CellFromMatrix(mat.NewDense(3, 3, data))
}

//parseComment extracts key=value and key="quoted value" pairs from an
//extended XYZ comment line. Keys are lowercased.
func parseComment(line string) map[string]string {
	ret := make(map[string]string)
	for len(line) > 0 {
		line = strings.TrimLeft(line, " \t")
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			break
		}
		key := strings.ToLower(strings.TrimSpace(line[:eq]))
		if sp := strings.LastIndexAny(key, " \t"); sp >= 0 {
			key = key[sp+1:]
		}
		line = line[eq+1:]
		var val string
		if strings.HasPrefix(line, `"`) {
			end := strings.IndexByte(line[1:], '"')
			if end < 0 {
				val, line = line[1:], ""
			} else {
				val, line = line[1:end+1], line[end+2:]
			}
		} else {
			end := strings.IndexAny(line, " \t")
			if end < 0 {
				val, line = line, ""
			} else {
				val, line = line[:end], line[end:]
			}
		}
		ret[key] = val
	}
	return ret
}
