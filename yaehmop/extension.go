/*
 * extension.go, part of goavo.
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
	"fmt"
	"io"

	"github.com/rmera/goavo/bandplot"
	"github.com/rmera/goavo/crystal"
	"github.com/rmera/goavo/settings"
)

//Dialog lets the user edit the settings before a calculation. Exec gets a copy of the
//current settings, which it may change, and returns true if the user accepted.
type Dialog interface {
	Exec(S *Settings) bool
}

//Notifier shows a failure to the user and doesn't return until the user has seen it.
type Notifier interface {
	Warn(title, message string)
}

const appTitle = "Avogadro2"

//Extension is the band structure calculation as seen from the host
//application: it knows the current molecule, keeps the settings, and runs
//YAeHMOP when the user asks for it.
type Extension struct {
	store    settings.Store
	settings Settings
	dialog   Dialog
	notifier Notifier
	runner   *Runner
	mol      *crystal.Molecule

	//Out receives the YAeHMOP input and the band data when the settings ask for them.
	//If nil, they are discarded.
	Out io.Writer
	//PlotPath is where the band structure plot is saved. No plot is made if empty.
	PlotPath string
}

//NewExtension returns an extension reading its settings from store.
func NewExtension(store settings.Store, dialog Dialog, notifier Notifier) *Extension {
	return &Extension{
		store:    store,
		settings: LoadSettings(store),
		dialog:   dialog,
		notifier: notifier,
		runner:   NewRunner(),
	}
}

//SetRunner replaces the runner used to execute YAeHMOP.
func (E *Extension) SetRunner(R *Runner) { E.runner = R }

//Settings returns the current settings.
func (E *Extension) Settings() Settings { return E.settings }

//SetMolecule sets the molecule the calculations are run on. It can be nil.
func (E *Extension) SetMolecule(mol *crystal.Molecule) { E.mol = mol }

//Enabled is true if a band structure can be requested, that is, if there is a
//molecule and it has a unit cell.
func (E *Extension) Enabled() bool {
	return E.mol.Periodic()
}

//fail decorates err with the caller, logs it once, and shows it to the user
//with prefix in front of the message.
func (E *Extension) fail(err error, caller, prefix string) error {
	var ye *Error
	if caller != "" && errors.As(err, &ye) {
		ye.Decorate(caller)
	}
	msg := prefix + err.Error()
	logf("%s", msg)
	if E.notifier != nil {
		E.notifier.Warn(appTitle, msg)
	}
	return err
}

//DisplayBandDialog checks that a calculation is possible, shows the dialog and, if
//the user accepts, saves the settings and calculates the band structure. A cancelled
//dialog returns nil bands and a nil error.
func (E *Extension) DisplayBandDialog() (*Bands, error) {
	if E.mol == nil {
		//Nothing to tell the user, the action is disabled without a molecule.
		err := newError(ErrNoMolecule, "", "", "", "DisplayBandDialog")
		logf("%s", err)
		return nil, err
	}
	if E.mol.Cell == nil {
		return nil, E.fail(newError(ErrNoCell, "", E.mol.Name, "", "DisplayBandDialog"), "", "")
	}
	S := E.settings
	if E.dialog != nil && !E.dialog.Exec(&S) {
		return nil, nil
	}
	S.Check()
	E.settings = S
	if err := S.Save(E.store); err != nil {
		//The calculation can still go on with the new settings.
		logf("couldn't save the settings: %v", err)
	}
	return E.CalculateBandStructure()
}

func (E *Extension) out() io.Writer {
	if E.Out == nil {
		return io.Discard
	}
	return E.Out
}

//CalculateBandStructure runs YAeHMOP with the current settings and molecule,
//and plots the result if PlotPath is set.
func (E *Extension) CalculateBandStructure() (*Bands, error) {
	var title string
	if E.mol != nil {
		title = E.mol.Name
	}
	input, err := BuildInput(title, E.mol, E.settings)
	if err != nil {
		return nil, E.fail(err, "CalculateBandStructure", "")
	}
	if E.settings.DisplayInput {
		fmt.Fprintf(E.out(), "YAeHMOP input:\n%s\n", input)
	}
	res, err := E.runner.run(title, input)
	if err != nil {
		return nil, E.fail(err, "CalculateBandStructure", "Yaehmop execution failed with the following error:\n")
	}
	bands, err := ParseBands(res.Stdout)
	if err != nil {
		return nil, E.fail(err, "CalculateBandStructure", "")
	}
	shift := 0.0
	if E.settings.ZeroFermi {
		shift = E.settings.Fermi
	}
	if E.settings.DisplayData {
		fmt.Fprintf(E.out(), "Band data:\n%s\n", tableString(bands.Table(shift)))
	}
	if E.PlotPath != "" {
		if err := E.plot(bands, shift); err != nil {
			return bands, E.fail(err, "CalculateBandStructure", "couldn't plot the band structure: ")
		}
	}
	return bands, nil
}

func (E *Extension) plot(bands *Bands, shift float64) error {
	P := bandplot.New()
	if err := P.SetData(bands.Table(shift)); err != nil {
		return err
	}
	P.SetTitle("YAeHMOP Band Structure")
	P.SetXTitle("K-points")
	P.SetYTitle("Energy (eV)")
	colors := make([]bandplot.RGBA, bands.NumOrbitals)
	for i := range colors {
		colors[i] = bandplot.RGBA{0, 0, 0, 1}
	}
	P.SetLineColors(colors)
	var pos []float64
	var labels []string
	for i, idx := range bands.SpecialIndexes() {
		if idx < 0 {
			continue
		}
		pos = append(pos, float64(idx))
		labels = append(labels, bands.SpecialPoints[i].Label)
	}
	if len(pos) > 0 {
		if err := P.SetXTicks(pos, labels); err != nil {
			return err
		}
	}
	if E.settings.LimitY {
		P.SetYRange(E.settings.MinY, E.settings.MaxY)
	}
	if E.settings.PlotFermi {
		P.AddHLine(E.settings.Fermi-shift, "Fermi level", bandplot.RGBA{1, 0, 0, 1})
	}
	return P.Save(E.PlotPath, bandplot.DefaultWidth, bandplot.DefaultHeight)
}

func tableString(data [][]float64) string {
	if len(data) == 0 {
		return ""
	}
	var b []byte
	for k := range data[0] {
		for i, col := range data {
			if i > 0 {
				b = append(b, ' ')
			}
			b = fmt.Appendf(b, "%.4f", col[k])
		}
		b = append(b, '\n')
	}
	return string(b)
}
