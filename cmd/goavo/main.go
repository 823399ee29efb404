/*
 * main.go, part of goavo.
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

//goavo runs the band structure, record browser and plugin downloader
//extensions from the command line.
//
//	goavo band [flags] structure.xyz
//	goavo records [flags] [results.json ...]
//	goavo plugins [flags]
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

//notifier prints warnings to stderr, in colour when stderr is a terminal.
type notifier struct {
	w io.Writer
}

func (N notifier) Warn(title, message string) {
	fmt.Fprintf(N.w, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint(title+":"), message)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s <command> [flags]\n\ncommands:\n", os.Args[0])
	fmt.Fprintln(w, "  band     calculate a band structure with YAeHMOP")
	fmt.Fprintln(w, "  records  list chemistry database records")
	fmt.Fprintln(w, "  plugins  list and install plugins")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("goavo: ")
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "band":
		err = runBand(args, os.Stdout, notifier{os.Stderr})
	case "records":
		err = runRecords(args, os.Stdout)
	case "plugins":
		err = runPlugins(args, os.Stdout)
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
		return
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
