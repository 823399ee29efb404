/*
 * settings_test.go, part of goavo.
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

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpersDefaults(Te *testing.T) {
	m := NewMemory()
	assert.Equal(Te, 40, Int(m, "yaehmop/bandOptions/numBandKPoints", 40))
	assert.Equal(Te, 1.5, Float(m, "x", 1.5))
	assert.True(Te, Bool(m, "y", true))
	assert.Equal(Te, "GM", String(m, "z", "GM"))
}

func TestHelpersConversions(Te *testing.T) {
	var m Memory //zero value must work
	m.SetValue("i64", int64(7))
	m.SetValue("f", 3.0)
	m.SetValue("fs", "2.5")
	m.SetValue("bs", "true")
	m.SetValue("wrong", []int{1})
	assert.Equal(Te, 7, Int(&m, "i64", 0))
	assert.Equal(Te, 3, Int(&m, "f", 0))
	assert.Equal(Te, 7.0, Float(&m, "i64", 0))
	assert.Equal(Te, 2.5, Float(&m, "fs", 0))
	assert.True(Te, Bool(&m, "bs", false))
	assert.Equal(Te, 9, Int(&m, "wrong", 9))
	assert.False(Te, Bool(&m, "wrong", false))
	assert.Equal(Te, []string{"bs", "f", "fs", "i64", "wrong"}, m.Keys())
}

func TestFileRoundTrip(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "conf", "settings.toml")
	f, err := Open(path)
	require.NoError(Te, err, "a missing file is an empty store")
	f.SetValue("yaehmop/bandOptions/numBandKPoints", 60)
	f.SetValue("yaehmop/general/limitY", true)
	f.SetValue("yaehmop/general/minY", -12.5)
	f.SetValue("yaehmop/general/specialKPoints", "GM 0 0 0\nX 0.5 0 0")
	f.SetValue("top", "level")
	require.NoError(Te, f.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(Te, err)
	assert.True(Te, strings.Contains(string(raw), "[yaehmop.general]"), string(raw))

	g, err := Open(path)
	require.NoError(Te, err)
	assert.Equal(Te, 60, Int(g, "yaehmop/bandOptions/numBandKPoints", 0))
	assert.True(Te, Bool(g, "yaehmop/general/limitY", false))
	assert.Equal(Te, -12.5, Float(g, "yaehmop/general/minY", 0))
	assert.Equal(Te, "GM 0 0 0\nX 0.5 0 0", String(g, "yaehmop/general/specialKPoints", ""))
	assert.Equal(Te, "level", String(g, "top", ""))
	assert.Equal(Te, path, g.Path())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(Te, err)
	assert.Len(Te, entries, 1, "the temporary file must not be left behind")
}

func TestNestCollision(Te *testing.T) {
	tree := nest(map[string]any{"a": 1, "a/b": 2, "c/d": 3})
	assert.Equal(Te, 1, tree["a"])
	assert.Equal(Te, 2, tree["a/b"])
	back := make(map[string]any)
	flatten("", tree, back)
	assert.Equal(Te, map[string]any{"a": 1, "a/b": 2, "c/d": 3}, back)
}

func TestOpenBadFile(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "bad.toml")
	require.NoError(Te, os.WriteFile(path, []byte("this is = = not toml"), 0o644))
	_, err := Open(path)
	assert.Error(Te, err)
}
