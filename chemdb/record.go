/*
 * record.go, part of goavo.
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

//Package chemdb holds the client-side pieces of a chemistry database
//browser: the loosely typed molecule records, a list model that views can
//observe, and a small local library of records.
package chemdb

import "fmt"

//Record is one molecule document as returned by the database. The fields
//used here are "_id", "name", "smiles", "inchikey" and "properties", the
//latter being a nested document with, among others, "formula".
type Record map[string]any

func (R Record) str(key string) string {
	v, ok := R[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

//ID returns the database identifier of the record.
func (R Record) ID() string { return R.str("_id") }

//Name returns the stored name, which can be empty. See Model.NameAt.
func (R Record) Name() string { return R.str("name") }

func (R Record) SMILES() string { return R.str("smiles") }

func (R Record) InChIKey() string { return R.str("inchikey") }

//Properties returns the nested property document, or nil.
func (R Record) Properties() map[string]any {
	switch p := R["properties"].(type) {
	case map[string]any:
		return p
	case Record:
		return p
	}
	return nil
}

//Formula returns the "formula" entry of the properties.
func (R Record) Formula() string {
	return Record(R.Properties()).str("formula")
}
