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

package yaehmop

import (
	"github.com/rmera/goavo/settings"
)

const (
	keyNumBandKPoints = "yaehmop/bandOptions/numBandKPoints"
	keyDisplayInput   = "yaehmop/general/displayYaehmopInput"
	keyDisplayData    = "yaehmop/general/displayData"
	keyLimitY         = "yaehmop/general/limitY"
	keyMinY           = "yaehmop/general/minY"
	keyMaxY           = "yaehmop/general/maxY"
	keyPlotFermi      = "yaehmop/general/plotFermi"
	keyFermi          = "yaehmop/general/fermi"
	keyZeroFermi      = "yaehmop/general/zeroFermi"
	keyNumDim         = "yaehmop/general/numDim"
	keySpecialKPoints = "yaehmop/general/specialKPoints"
)

const (
	defNumBandKPoints = 40
	defNumDim         = 3
	//A path through the high-symmetry points of a simple cubic
	//Brillouin zone, in fractional reciprocal coordinates.
	defSpecialKPoints = "GM 0 0 0\nX 0.5 0 0\nM 0.5 0.5 0\nGM 0 0 0\nR 0.5 0.5 0.5"
)

//Settings are the options of a band structure calculation.
//They are read when the extension is created and written back, all
//at once, when the user accepts the band dialog.
type Settings struct {
	NumBandKPoints int  //k points between two consecutive special k points
	DisplayInput   bool //show the generated YAeHMOP input
	DisplayData    bool //show the band data as text
	LimitY         bool //clamp the energy axis to MinY..MaxY
	MinY           float64
	MaxY           float64
	PlotFermi      bool //draw a line at the Fermi level
	Fermi          float64
	ZeroFermi      bool //shift the energies so the Fermi level is at 0
	NumDim         int  //periodic dimensions, 1 to 3
	SpecialKPoints string
}

//DefaultSettings returns the settings used when nothing has been stored.
func DefaultSettings() Settings {
	return Settings{
		NumBandKPoints: defNumBandKPoints,
		NumDim:         defNumDim,
		SpecialKPoints: defSpecialKPoints,
	}
}

//LoadSettings reads the settings from s, using the defaults for missing values.
func LoadSettings(s settings.Store) Settings {
	S := Settings{
		NumBandKPoints: settings.Int(s, keyNumBandKPoints, defNumBandKPoints),
		DisplayInput:   settings.Bool(s, keyDisplayInput, false),
		DisplayData:    settings.Bool(s, keyDisplayData, false),
		LimitY:         settings.Bool(s, keyLimitY, false),
		MinY:           settings.Float(s, keyMinY, 0),
		MaxY:           settings.Float(s, keyMaxY, 0),
		PlotFermi:      settings.Bool(s, keyPlotFermi, false),
		Fermi:          settings.Float(s, keyFermi, 0),
		ZeroFermi:      settings.Bool(s, keyZeroFermi, false),
		NumDim:         settings.Int(s, keyNumDim, defNumDim),
		SpecialKPoints: settings.String(s, keySpecialKPoints, defSpecialKPoints),
	}
	S.Check()
	return S
}

//Save writes the settings to s and syncs it once, so the stored settings are
//either all old or all new.
func (S Settings) Save(s settings.Store) error {
	s.SetValue(keyNumBandKPoints, S.NumBandKPoints)
	s.SetValue(keyDisplayInput, S.DisplayInput)
	s.SetValue(keyDisplayData, S.DisplayData)
	s.SetValue(keyLimitY, S.LimitY)
	s.SetValue(keyMinY, S.MinY)
	s.SetValue(keyMaxY, S.MaxY)
	s.SetValue(keyPlotFermi, S.PlotFermi)
	s.SetValue(keyFermi, S.Fermi)
	s.SetValue(keyZeroFermi, S.ZeroFermi)
	s.SetValue(keyNumDim, S.NumDim)
	s.SetValue(keySpecialKPoints, S.SpecialKPoints)
	return s.Sync()
}

//Check fixes out-of-range values, logging what was changed.
func (S *Settings) Check() {
	if S.NumDim < 1 || S.NumDim > 3 {
		logf("Invalid number of periodic dimensions %d. Will use the default: %d", S.NumDim, defNumDim)
		S.NumDim = defNumDim
	}
	if S.NumBandKPoints < 0 {
		logf("Invalid number of band k points %d. Will use the default: %d", S.NumBandKPoints, defNumBandKPoints)
		S.NumBandKPoints = defNumBandKPoints
	}
	if S.LimitY && S.MinY > S.MaxY {
		S.MinY, S.MaxY = S.MaxY, S.MinY
	}
	if S.LimitY && S.MinY == S.MaxY {
		logf("Empty energy range %g to %g. The energy axis will not be limited", S.MinY, S.MaxY)
		S.LimitY = false
	}
}
