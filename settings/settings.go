/*
 * settings.go, part of goavo.
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

//Package settings implements a small key/value store for user settings.
//Keys are paths separated by "/" whose first element names the feature
//that owns the setting, for instance "yaehmop/general/numDim".
package settings

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

//Store is the settings collaborator. Values are read once when a component is
//built and written back, followed by a single Sync, when the user accepts a change.
type Store interface {
	//Value returns the value stored under key, and whether there was one.
	Value(key string) (any, bool)
	//SetValue stores v under key. The change may not be persisted until Sync is called.
	SetValue(key string, v any)
	//Sync persists all pending changes.
	Sync() error
}

//Int returns the value under key as an int, or def if there is no value or
//it can't be converted.
func Int(s Store, key string, def int) int {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case uint:
		return int(t)
	case float64:
		if t == math.Trunc(t) {
			return int(t)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i
		}
	}
	return def
}

//Float returns the value under key as a float64, or def.
func Float(s Store, key string, def float64) float64 {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return def
}

//Bool returns the value under key as a bool, or def.
func Bool(s Store, key string, def bool) bool {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return def
}

//String returns the value under key as a string, or def.
func String(s Store, key string, def string) string {
	v, ok := s.Value(key)
	if !ok {
		return def
	}
	if t, ok := v.(string); ok {
		return t
	}
	return fmt.Sprint(v)
}

//Memory is a Store that lives only in memory. Sync does nothing.
//The zero value is ready to use.
type Memory struct {
	values map[string]any
}

//NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]any)}
}

func (M *Memory) Value(key string) (any, bool) {
	v, ok := M.values[key]
	return v, ok
}

func (M *Memory) SetValue(key string, v any) {
	if M.values == nil {
		M.values = make(map[string]any)
	}
	M.values[key] = v
}

func (M *Memory) Sync() error { return nil }

//Keys returns the stored keys, sorted.
func (M *Memory) Keys() []string {
	keys := make([]string, 0, len(M.values))
	for k := range M.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
