/*
 * extension_test.go, part of goavo.
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

package yaehmop

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/goavo/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDialog struct {
	accept bool
	edit   func(*Settings)
	calls  int
}

func (D *fakeDialog) Exec(S *Settings) bool {
	D.calls++
	if D.edit != nil {
		D.edit(S)
	}
	return D.accept
}

type fakeNotifier struct {
	messages []string
}

func (N *fakeNotifier) Warn(title, message string) {
	N.messages = append(N.messages, title+": "+message)
}

//bandYaehmop is a yaehmop that swallows its input and prints canned band data.
func bandYaehmop(Te *testing.T, dir string) *Runner {
	fakeYaehmop(Te, dir, "cat >/dev/null\ncat <<'EOF'\n"+bandOutput+"EOF")
	return &Runner{AppDir: dir, Getenv: noEnv}
}

func TestExtensionNoMolecule(Te *testing.T) {
	notes := new(fakeNotifier)
	dialog := &fakeDialog{accept: true}
	E := NewExtension(settings.NewMemory(), dialog, notes)
	assert.False(Te, E.Enabled())
	bands, err := E.DisplayBandDialog()
	assert.Nil(Te, bands)
	assert.True(Te, errors.Is(err, ErrNoMolecule))
	assert.Empty(Te, notes.messages)
	assert.Equal(Te, 0, dialog.calls)
}

func TestExtensionNoCell(Te *testing.T) {
	notes := new(fakeNotifier)
	dialog := &fakeDialog{accept: true}
	E := NewExtension(settings.NewMemory(), dialog, notes)
	E.SetMolecule(salt(Te, false))
	assert.False(Te, E.Enabled())
	_, err := E.DisplayBandDialog()
	assert.True(Te, errors.Is(err, ErrNoCell))
	require.Len(Te, notes.messages, 1)
	assert.Contains(Te, notes.messages[0], "no unit cell")
	assert.Equal(Te, 0, dialog.calls)
}

func TestExtensionCancel(Te *testing.T) {
	store := settings.NewMemory()
	dialog := &fakeDialog{accept: false, edit: func(S *Settings) { S.NumBandKPoints = 99 }}
	E := NewExtension(store, dialog, new(fakeNotifier))
	E.SetMolecule(salt(Te, true))
	bands, err := E.DisplayBandDialog()
	assert.NoError(Te, err)
	assert.Nil(Te, bands)
	assert.Equal(Te, 40, E.Settings().NumBandKPoints)
	assert.Empty(Te, store.Keys(), "a cancelled dialog must not touch the settings")
}

func TestExtensionRun(Te *testing.T) {
	dir := Te.TempDir()
	store := settings.NewMemory()
	notes := new(fakeNotifier)
	dialog := &fakeDialog{accept: true, edit: func(S *Settings) {
		S.DisplayInput = true
		S.DisplayData = true
		S.ZeroFermi = true
		S.PlotFermi = true
		S.Fermi = -3
		S.LimitY = true
		S.MinY, S.MaxY = -15, 5
	}}
	E := NewExtension(store, dialog, notes)
	E.SetRunner(bandYaehmop(Te, filepath.Join(dir, "app")))
	E.SetMolecule(salt(Te, true))
	var out bytes.Buffer
	E.Out = &out
	E.PlotPath = filepath.Join(dir, "bands.png")
	require.True(Te, E.Enabled())

	bands, err := E.DisplayBandDialog()
	require.NoError(Te, err)
	require.NotNil(Te, bands)
	assert.Empty(Te, notes.messages)
	assert.Len(Te, bands.Energies, 3)
	assert.Contains(Te, out.String(), "YAeHMOP input:\nNaCl\nGeometry\n")
	assert.Contains(Te, out.String(), "Band data:\n0.0000 -9.5000 -0.2500\n")
	assert.True(Te, settings.Bool(store, "yaehmop/general/zeroFermi", false), "accepted settings are saved")
	_, err = os.Stat(E.PlotPath)
	assert.NoError(Te, err)
}

func TestExtensionToolFailure(Te *testing.T) {
	dir := Te.TempDir()
	notes := new(fakeNotifier)
	E := NewExtension(settings.NewMemory(), &fakeDialog{accept: true}, notes)
	fakeYaehmop(Te, dir, "cat >/dev/null\necho 'no parameters for Na' >&2\nexit 1")
	E.SetRunner(&Runner{AppDir: dir, Getenv: noEnv})
	E.SetMolecule(salt(Te, true))
	bands, err := E.CalculateBandStructure()
	assert.Nil(Te, bands)
	assert.True(Te, errors.Is(err, ErrExitCode))
	require.Len(Te, notes.messages, 1)
	assert.Contains(Te, notes.messages[0], "Yaehmop execution failed with the following error:\n")
	assert.Contains(Te, notes.messages[0], "no parameters for Na")
}

func TestExtensionBadOutput(Te *testing.T) {
	dir := Te.TempDir()
	notes := new(fakeNotifier)
	E := NewExtension(settings.NewMemory(), nil, notes)
	fakeYaehmop(Te, dir, "cat >/dev/null\necho done")
	E.SetRunner(&Runner{AppDir: dir, Getenv: noEnv})
	E.SetMolecule(salt(Te, true))
	_, err := E.DisplayBandDialog()
	assert.True(Te, errors.Is(err, ErrBadOutput))
	assert.Len(Te, notes.messages, 1)
}

func TestExtensionFailureLoggedOnce(Te *testing.T) {
	var logbuf bytes.Buffer
	Logger.SetOutput(&logbuf)
	defer Logger.SetOutput(io.Discard)
	dir := Te.TempDir()
	E := NewExtension(settings.NewMemory(), nil, new(fakeNotifier))
	fakeYaehmop(Te, dir, "cat >/dev/null\necho 'no parameters for Na' >&2\nexit 1")
	E.SetRunner(&Runner{AppDir: dir, Getenv: noEnv})
	E.SetMolecule(salt(Te, true))
	_, err := E.CalculateBandStructure()
	require.Error(Te, err)
	assert.Equal(Te, 1, strings.Count(logbuf.String(), "no parameters for Na"))
	var ye *Error
	require.True(Te, errors.As(err, &ye))
	assert.Equal(Te, []string{"Run", "CalculateBandStructure"}, ye.Decorate(""))

	logbuf.Reset()
	_, err = E.runner.Run([]byte("Title\n"))
	require.Error(Te, err)
	assert.Equal(Te, 1, strings.Count(logbuf.String(), "no parameters for Na"))
}
