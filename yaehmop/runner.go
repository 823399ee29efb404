/*
 * runner.go, part of goavo.
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
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

//EnvExecutable names the environment variable that overrides the path to the executable.
const EnvExecutable = "YAEHMOP_EXECUTABLE"

//stdioFlag makes YAeHMOP read its input from stdin and write its results to stdout.
const stdioFlag = "--use_stdin_stdout"

//Logger gets a line for every failure, plus the input and output of each run
//when a Runner has Debug set.
var Logger = log.New(os.Stderr, "yaehmop: ", log.LstdFlags)

func logf(format string, v ...any) {
	Logger.Printf(format, v...)
}

//ExecutableName returns the file name of the YAeHMOP executable on this platform.
func ExecutableName() string {
	if runtime.GOOS == "windows" {
		return "yaehmop.exe"
	}
	return "yaehmop"
}

//Result holds what the program wrote.
type Result struct {
	Stdout []byte
	Stderr []byte
}

//Runner runs the YAeHMOP executable. The zero value looks for the program
//as described in the package documentation.
type Runner struct {
	//AppDir is the directory of the host application, where the executable is
	//looked for. If empty, the directory of the running program is used.
	AppDir string
	//Getenv reads the environment. If nil, os.Getenv is used.
	Getenv func(string) string
	//Debug logs the input and output of each run.
	Debug bool

	command string
}

//NewRunner returns a Runner with the default search behaviour.
func NewRunner() *Runner {
	return new(Runner)
}

//SetCommand sets the path to the executable, skipping the search.
func (R *Runner) SetCommand(path string) {
	R.command = path
}

//Command returns the path set with SetCommand, if any.
func (R *Runner) Command() string {
	return R.command
}

func (R *Runner) getenv(key string) string {
	if R.Getenv != nil {
		return R.Getenv(key)
	}
	return os.Getenv(key)
}

func (R *Runner) appDir() string {
	if R.AppDir != "" {
		return R.AppDir
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

//Resolve returns the path of the executable that Run would use.
//The candidates are, in order: the path set with SetCommand, the
//YAEHMOP_EXECUTABLE environment variable, the application directory and
//../bin relative to it.
func (R *Runner) Resolve() (string, error) {
	if R.command != "" {
		return R.command, nil
	}
	if env := R.getenv(EnvExecutable); env != "" {
		return env, nil
	}
	exe := ExecutableName()
	if dir := R.appDir(); dir != "" {
		for _, p := range []string{
			filepath.Join(dir, exe),
			filepath.Join(dir, "..", "bin", exe),
		} {
			if isFile(p) {
				return p, nil
			}
		}
	}
	return "", newError(ErrNotFound, "", "", "", "Resolve")
}

//Run runs YAeHMOP with input on its standard input and waits for it to finish.
//extra arguments are passed after the flag that selects stdin/stdout mode.
//Either the whole output is returned or an *Error, whose message includes
//whatever the program wrote to stderr. Nothing is retried, and a run can't be
//cancelled once it has started.
func (R *Runner) Run(input []byte, args ...string) (*Result, error) {
	res, err := R.run("", input, args...)
	if err != nil {
		logf("%s", err)
	}
	return res, err
}

//run does the work of Run, leaving the logging of the returned error to the caller.
func (R *Runner) run(title string, input []byte, args ...string) (*Result, error) {
	program, err := R.Resolve()
	if err != nil {
		err.(*Error).Decorate("Run")
		return nil, err
	}
	if R.Debug {
		logf("input for %s:\n%s", program, input)
	}
	var stdout, stderr bytes.Buffer
	command := exec.Command(program, append([]string{stdioFlag}, args...)...)
	//exec writes the input and closes the pipe once it has all been written.
	command.Stdin = bytes.NewReader(input)
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Start(); err != nil {
		E := newError(ErrStart, program, title, err.Error(), "Run")
		E.err = err
		return nil, E
	}
	err = command.Wait()
	if err != nil {
		E := classify(err, program, title, stderr.String())
		if stdout.Len() > 0 {
			logf("Output is as follows:\n%s", stdout.Bytes())
		}
		return nil, E
	}
	if R.Debug {
		logf("output of %s:\n%s", program, stdout.Bytes())
	}
	return &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

//classify turns the error from Wait into one of ErrCrash, ErrExitCode or ErrWait.
func classify(err error, program, title, diagnostics string) *Error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		E := newError(ErrWait, program, title, joinDiag(err.Error(), diagnostics), "Run")
		E.err = err
		return E
	}
	var E *Error
	if !exitErr.Exited() {
		//killed by a signal
		E = newError(ErrCrash, program, title, diagnostics, "Run")
	} else {
		E = newError(ErrExitCode, program, title, diagnostics, "Run")
		E.exitcode = exitErr.ExitCode()
	}
	E.err = err
	return E
}

func joinDiag(a, b string) string {
	if b == "" {
		return a
	}
	return a + "\n" + b
}
