/*
 * file.go, part of goavo.
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
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//File is a Store persisted as a TOML file. Every "/" in a key opens a
//table, so "yaehmop/general/numDim" is stored as
//
//	[yaehmop.general]
//	numDim = 3
type File struct {
	Memory
	path string
}

//DefaultPath returns the settings file used when none is given, under the
//user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "goavo", "settings.toml"), nil
}

//Open loads the settings file at path. A file that doesn't exist yet is
//not an error, it just gives an empty store.
func Open(path string) (*File, error) {
	F := &File{Memory: *NewMemory(), path: path}
	tree := make(map[string]any)
	_, err := toml.DecodeFile(path, &tree)
	if errors.Is(err, fs.ErrNotExist) {
		return F, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: reading %s: %w", path, err)
	}
	flatten("", tree, F.values)
	return F, nil
}

//Path returns the file backing the store.
func (F *File) Path() string {
	return F.path
}

//Sync writes the whole store to its file. The data goes to a temporary
//file in the same directory, which then replaces the old one, so readers
//never see half-written settings.
func (F *File) Sync() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(nest(F.values)); err != nil {
		return fmt.Errorf("settings: encoding: %w", err)
	}
	dir := filepath.Dir(F.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	defer os.Remove(tmp.Name()) //fails harmlessly after the rename
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("settings: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), F.path); err != nil {
		return fmt.Errorf("settings: replacing %s: %w", F.path, err)
	}
	return nil
}

func flatten(prefix string, tree map[string]any, out map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "/" + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, out)
			continue
		}
		out[key] = v
	}
}

//nest turns flat keys back into tables. If a key is both a value and a
//table prefix ("a" and "a/b") the value wins, and the longer key is kept
//as a quoted, flat key inside the last table that could be opened.
func nest(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys) //"a" always comes before "a/b"
	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, "/")
		table := root
		last := key
		for i, p := range parts {
			if i == len(parts)-1 {
				last = p
				break
			}
			next, ok := table[p]
			if !ok {
				next = make(map[string]any)
				table[p] = next
			}
			m, ok := next.(map[string]any)
			if !ok {
				last = strings.Join(parts[i:], "/")
				break
			}
			table = m
		}
		table[last] = flat[key]
	}
	return root
}
