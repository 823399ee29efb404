/*
 * json.go, part of goavo.
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

package chemdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

//ReadRecords decodes molecule records from r. It accepts a JSON array of
//molecule documents, a single document, or a search response of the form
//{"results": [...]}. Numbers are kept as json.Number so ids and counts
//don't lose precision.
func ReadRecords(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if raw[0] == '[' {
		var recs []Record
		if err := dec.Decode(&recs); err != nil {
			return nil, fmt.Errorf("chemdb: decoding records: %w", err)
		}
		return recs, nil
	}
	var doc Record
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("chemdb: decoding records: %w", err)
	}
	results, ok := doc["results"]
	if !ok {
		return []Record{doc}, nil
	}
	list, ok := results.([]any)
	if !ok {
		return nil, fmt.Errorf("chemdb: \"results\" is not a list")
	}
	recs := make([]Record, 0, len(list))
	for i, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("chemdb: result %d is not a document", i)
		}
		recs = append(recs, Record(m))
	}
	return recs, nil
}

//WriteRecords encodes recs as an indented JSON array.
func WriteRecords(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if recs == nil {
		recs = []Record{}
	}
	return enc.Encode(recs)
}
