/*
 * library_test.go, part of goavo.
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
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResponse = `{
  "matches": 2,
  "results": [
    {"_id": "5c8a", "name": "caffeine", "smiles": "Cn1cnc2c1c(=O)n(C)c(=O)n2C",
     "inchikey": "RYYVLZVUVIJVGH-UHFFFAOYSA-N", "properties": {"formula": "C8H10N4O2", "mass": 194.19}},
    {"_id": "5c8b", "smiles": "O", "inchikey": "XLYOFNOQVPJJNP-UHFFFAOYSA-N", "properties": {"formula": "H2O"}}
  ]
}`

func TestReadRecords(Te *testing.T) {
	recs, err := ReadRecords(strings.NewReader(searchResponse))
	require.NoError(Te, err)
	require.Len(Te, recs, 2)
	assert.Equal(Te, "caffeine", recs[0].Name())
	assert.Equal(Te, "C8H10N4O2", recs[0].Formula())
	assert.Equal(Te, json.Number("194.19"), recs[0].Properties()["mass"])
	assert.Equal(Te, "H2O", recs[1].Formula())

	arr, err := ReadRecords(strings.NewReader(`[{"_id": 12, "smiles": "C"}]`))
	require.NoError(Te, err)
	require.Len(Te, arr, 1)
	assert.Equal(Te, "12", arr[0].ID())

	one, err := ReadRecords(strings.NewReader(`{"_id": "solo"}`))
	require.NoError(Te, err)
	assert.Equal(Te, "solo", one[0].ID())

	none, err := ReadRecords(strings.NewReader("  "))
	require.NoError(Te, err)
	assert.Empty(Te, none)

	_, err = ReadRecords(strings.NewReader(`{"results": 3}`))
	assert.Error(Te, err)
	_, err = ReadRecords(strings.NewReader(`[{"_id": `))
	assert.Error(Te, err)
}

func TestWriteRecords(Te *testing.T) {
	var buf bytes.Buffer
	require.NoError(Te, WriteRecords(&buf, []Record{molecule("a", "x", "H2")}))
	back, err := ReadRecords(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, "H2", back[0].Formula())
	buf.Reset()
	require.NoError(Te, WriteRecords(&buf, nil))
	assert.Equal(Te, "[]\n", buf.String())
}

func TestLibrary(Te *testing.T) {
	ctx := context.Background()
	lib, err := OpenLibrary(filepath.Join(Te.TempDir(), "lib", "records.db"))
	require.NoError(Te, err)
	defer lib.Close()

	recs, err := ReadRecords(strings.NewReader(searchResponse))
	require.NoError(Te, err)
	for _, r := range recs {
		_, err := lib.Put(ctx, r)
		require.NoError(Te, err)
	}
	anon := Record{"smiles": "N", "properties": map[string]any{"formula": "H3N"}}
	id, err := lib.Put(ctx, anon)
	require.NoError(Te, err)
	assert.NotEmpty(Te, id)
	assert.Equal(Te, id, anon.ID())

	//an update keeps the original position
	upd := molecule("5c8a", "coffee", "C8H10N4O2")
	_, err = lib.Put(ctx, upd)
	require.NoError(Te, err)

	all, err := lib.All(ctx)
	require.NoError(Te, err)
	require.Len(Te, all, 3)
	assert.Equal(Te, "coffee", all[0].Name())
	assert.Equal(Te, "5c8b", all[1].ID())
	assert.Equal(Te, id, all[2].ID())

	ok, err := lib.Delete(ctx, "5c8b")
	require.NoError(Te, err)
	assert.True(Te, ok)
	ok, err = lib.Delete(ctx, "5c8b")
	require.NoError(Te, err)
	assert.False(Te, ok)

	m := NewModel()
	require.NoError(Te, lib.Fill(ctx, m))
	assert.Equal(Te, 2, m.Count())
	assert.Equal(Te, "H3N", m.NameAt(1))

	_, err = lib.Put(ctx, nil)
	assert.Error(Te, err)
	_, err = OpenLibrary(" ")
	assert.Error(Te, err)
}
