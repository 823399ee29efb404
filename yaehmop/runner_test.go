/*
 * runner_test.go, part of goavo.
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
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

//fakeYaehmop writes a shell script standing in for yaehmop to dir and returns its path.
func fakeYaehmop(Te *testing.T, dir, body string) string {
	Te.Helper()
	if runtime.GOOS == "windows" {
		Te.Skip("the fake yaehmop is a shell script")
	}
	require.NoError(Te, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, ExecutableName())
	require.NoError(Te, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestResolveOrder(Te *testing.T) {
	root := Te.TempDir()
	app := filepath.Join(root, "app")
	require.NoError(Te, os.MkdirAll(app, 0o755))
	R := &Runner{AppDir: app, Getenv: noEnv}

	_, err := R.Resolve()
	assert.True(Te, errors.Is(err, ErrNotFound))

	sibling := fakeYaehmop(Te, filepath.Join(root, "bin"), "exit 0")
	got, err := R.Resolve()
	require.NoError(Te, err)
	assert.Equal(Te, filepath.Join(app, "..", "bin", ExecutableName()), got)
	assert.Equal(Te, filepath.Clean(sibling), filepath.Clean(got))

	local := fakeYaehmop(Te, app, "exit 0")
	got, err = R.Resolve()
	require.NoError(Te, err)
	assert.Equal(Te, local, got)

	R.Getenv = func(k string) string {
		if k == EnvExecutable {
			return "/opt/yaehmop/bin/yaehmop"
		}
		return ""
	}
	got, err = R.Resolve()
	require.NoError(Te, err)
	assert.Equal(Te, "/opt/yaehmop/bin/yaehmop", got)

	R.SetCommand("/elsewhere/yaehmop")
	got, err = R.Resolve()
	require.NoError(Te, err)
	assert.Equal(Te, "/elsewhere/yaehmop", got)
	assert.Equal(Te, "/elsewhere/yaehmop", R.Command())
}

func TestRunNotFound(Te *testing.T) {
	dir := Te.TempDir()
	marker := filepath.Join(dir, "started")
	//A yaehmop that would leave a mark if run, placed where it is not looked for.
	fakeYaehmop(Te, filepath.Join(dir, "nowhere"), "touch "+marker)
	R := &Runner{AppDir: filepath.Join(dir, "app"), Getenv: noEnv}
	res, err := R.Run([]byte("Title\n"))
	assert.Nil(Te, res)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrNotFound))
	assert.Contains(Te, err.Error(), "could not find yaehmop executable")
	_, statErr := os.Stat(marker)
	assert.True(Te, os.IsNotExist(statErr), "no process may be started")
}

func TestRunEcho(Te *testing.T) {
	dir := Te.TempDir()
	fakeYaehmop(Te, dir, `echo "$@" >&2
cat`)
	R := &Runner{AppDir: dir, Getenv: noEnv, Debug: true}
	input := []byte("Title\nGeometry\n1\n1 H 0 0 0\n")
	res, err := R.Run(input, "--extra")
	require.NoError(Te, err)
	assert.Equal(Te, input, res.Stdout, "the whole input must reach the program")
	assert.Equal(Te, "--use_stdin_stdout --extra\n", string(res.Stderr))
}

func TestRunExitCode(Te *testing.T) {
	dir := Te.TempDir()
	fakeYaehmop(Te, dir, `cat >/dev/null
echo partial
echo "bad lattice" >&2
exit 3`)
	R := &Runner{AppDir: dir, Getenv: noEnv}
	res, err := R.Run([]byte("Title\n"))
	assert.Nil(Te, res, "no partial results")
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrExitCode))
	var ye *Error
	require.True(Te, errors.As(err, &ye))
	assert.Equal(Te, 3, ye.ExitCode())
	assert.True(Te, ye.Critical())
	assert.Contains(Te, err.Error(), "finished abnormally with exit code 3")
	assert.Contains(Te, err.Error(), "bad lattice")
}

func TestRunCrash(Te *testing.T) {
	dir := Te.TempDir()
	fakeYaehmop(Te, dir, `kill -9 $$`)
	R := &Runner{AppDir: dir, Getenv: noEnv}
	_, err := R.Run([]byte("Title\n"))
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrCrash))
	assert.True(Te, strings.HasSuffix(strings.TrimSpace(err.Error()), "crashed"))
}

func TestRunStartFailure(Te *testing.T) {
	dir := Te.TempDir()
	path := fakeYaehmop(Te, dir, "cat")
	require.NoError(Te, os.Chmod(path, 0o644))
	R := &Runner{AppDir: dir, Getenv: noEnv}
	_, err := R.Run([]byte("Title\n"))
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrStart))
	assert.False(Te, errors.Is(err, ErrNotFound))
	assert.Contains(Te, err.Error(), path)
}

func TestClassifyWaitFailure(Te *testing.T) {
	cause := errors.New("copying stdout: broken pipe")
	E := classify(cause, "/opt/bin/yaehmop", "NaCl", "partial diagnostics")
	assert.True(Te, errors.Is(E, ErrWait))
	assert.False(Te, errors.Is(E, ErrExitCode))
	assert.False(Te, errors.Is(E, ErrCrash))
	assert.True(Te, errors.Is(E, cause))
	assert.Equal(Te, "NaCl", E.InputName())
	assert.Contains(Te, E.Error(), "failed to finish")
	assert.Contains(Te, E.Error(), "broken pipe")
	assert.Contains(Te, E.Error(), "partial diagnostics")
}
