/*
 * errors.go, part of goavo.
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
	"fmt"
	"strings"
)

//Kind is the category of a failure. Kinds are errors themselves, so
//errors.Is(err, ErrNotFound) works on any error returned by this package.
type Kind string

func (K Kind) Error() string { return string(K) }

const (
	//Configuration
	ErrNotFound Kind = "could not find yaehmop executable"

	//Process lifecycle
	ErrStart    Kind = "failed to start"
	ErrWait     Kind = "failed to finish"
	ErrCrash    Kind = "crashed"
	ErrExitCode Kind = "finished abnormally"

	//Preconditions
	ErrNoMolecule Kind = "the molecule is not set"
	ErrNoCell     Kind = "cannot calculate band structure: no unit cell"

	//Results
	ErrBadOutput Kind = "could not read band data"
)

//Error is the error type returned by this package.
type Error struct {
	kind       Kind
	program    string //path to the executable, if known
	inputname  string //title of the calculation
	additional string //captured diagnostics, or the underlying error text
	exitcode   int
	deco       []string
	critical   bool
	err        error
}

func (E Error) Error() string {
	var b strings.Builder
	if E.program != "" {
		b.WriteString(E.program)
		b.WriteString(" ")
	}
	b.WriteString(string(E.kind))
	if E.kind == ErrExitCode {
		fmt.Fprintf(&b, " with exit code %d", E.exitcode)
	}
	if a := strings.TrimSpace(E.additional); a != "" {
		b.WriteString(":\n")
		b.WriteString(a)
	}
	return b.String()
}

//Decorate adds the name of the calling function (and any extra information)
//to the error, and returns the decoration so far. An empty string just
//returns the decoration.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns the category of the error.
func (E Error) Kind() Kind { return E.kind }

//ExitCode returns the exit code for ErrExitCode errors, 0 otherwise.
func (E Error) ExitCode() int { return E.exitcode }

//InputName returns the title of the calculation that failed.
func (E Error) InputName() string { return E.inputname }

//Critical is true for errors that stop the calculation. Every error in this
//package is critical, as nothing is retried.
func (E Error) Critical() bool { return E.critical }

func (E Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == E.kind
}

func (E Error) Unwrap() error { return E.err }

func newError(kind Kind, program, inputname, additional string, caller string) *Error {
	return &Error{kind: kind, program: program, inputname: inputname, additional: additional, deco: []string{caller}, critical: true}
}
