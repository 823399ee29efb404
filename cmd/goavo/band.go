/*
 * band.go, part of goavo.
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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rmera/goavo/crystal"
	"github.com/rmera/goavo/settings"
	"github.com/rmera/goavo/yaehmop"
)

//flagDialog is the band dialog of the command line: the flags the user gave
//replace the stored settings, and the dialog is always accepted.
type flagDialog struct {
	fs      *flag.FlagSet
	kpoints *int
	dim     *int
	special *string
	fermi   *float64
	zero    *bool
	plotF   *bool
	ymin    *float64
	ymax    *float64
	input   *bool
	data    *bool
}

func newFlagDialog(fs *flag.FlagSet) *flagDialog {
	return &flagDialog{
		fs:      fs,
		kpoints: fs.Int("kpoints", 40, "k points between special k points"),
		dim:     fs.Int("dim", 3, "number of periodic dimensions (1-3)"),
		special: fs.String("special", "", "file with the special k points, one \"label kx ky kz\" per line"),
		fermi:   fs.Float64("fermi", 0, "Fermi level, in eV"),
		zero:    fs.Bool("zero-fermi", false, "shift energies so the Fermi level is 0"),
		plotF:   fs.Bool("plot-fermi", false, "draw the Fermi level"),
		ymin:    fs.Float64("ymin", 0, "lower energy limit of the plot"),
		ymax:    fs.Float64("ymax", 0, "upper energy limit of the plot"),
		input:   fs.Bool("show-input", false, "print the YAeHMOP input"),
		data:    fs.Bool("show-data", false, "print the band data"),
	}
}

func (D *flagDialog) Exec(S *yaehmop.Settings) bool {
	var err error
	D.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "kpoints":
			S.NumBandKPoints = *D.kpoints
		case "dim":
			S.NumDim = *D.dim
		case "special":
			var b []byte
			b, err = os.ReadFile(*D.special)
			S.SpecialKPoints = string(b)
		case "fermi":
			S.Fermi = *D.fermi
		case "zero-fermi":
			S.ZeroFermi = *D.zero
		case "plot-fermi":
			S.PlotFermi = *D.plotF
		case "ymin":
			S.LimitY = true
			S.MinY = *D.ymin
		case "ymax":
			S.LimitY = true
			S.MaxY = *D.ymax
		case "show-input":
			S.DisplayInput = *D.input
		case "show-data":
			S.DisplayData = *D.data
		}
	})
	if err != nil {
		fmt.Fprintf(D.fs.Output(), "can't read the special k points: %v\n", err)
		return false
	}
	return true
}

func runBand(args []string, out io.Writer, N yaehmop.Notifier) error {
	fs := flag.NewFlagSet("band", flag.ContinueOnError)
	dialog := newFlagDialog(fs)
	conf := fs.String("settings", "", "settings file (default: the user configuration directory)")
	plot := fs.String("plot", "bands.png", "plot file; empty for no plot")
	exe := fs.String("yaehmop", "", "path to the yaehmop executable")
	debug := fs.Bool("debug", false, "log the YAeHMOP input and output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("band: expected one structure file, got %d", fs.NArg())
	}
	store, err := openSettings(*conf)
	if err != nil {
		return err
	}
	mol, err := crystal.ReadXYZFile(fs.Arg(0))
	if err != nil {
		return err
	}
	E := yaehmop.NewExtension(store, dialog, N)
	R := yaehmop.NewRunner()
	R.Debug = *debug
	if *exe != "" {
		R.SetCommand(*exe)
	}
	E.SetRunner(R)
	E.SetMolecule(mol)
	E.Out = out
	E.PlotPath = *plot
	bands, err := E.DisplayBandDialog()
	if err != nil {
		return err
	}
	if bands == nil {
		return fmt.Errorf("band: cancelled")
	}
	fmt.Fprintf(out, "%d k points, %d bands\n", len(bands.KPoints), bands.NumOrbitals)
	if *plot != "" {
		fmt.Fprintf(out, "plot saved to %s\n", *plot)
	}
	return nil
}

func openSettings(path string) (*settings.File, error) {
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return settings.Open(path)
}
