/*
 * doc.go, part of goavo.
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

//Package yaehmop computes band structures of periodic systems with the
//YAeHMOP extended Hückel program, which must be obtained separately.
//
//The package builds the YAeHMOP input for a molecule with a unit cell,
//runs the program feeding the input through its standard input
//(the --use_stdin_stdout mode), reads the band data it prints, and plots it.
//The band structure itself is computed by YAeHMOP, not here.
//
//The executable is looked for in the YAEHMOP_EXECUTABLE environment
//variable, then next to the running program, then in ../bin relative to
//the running program.
package yaehmop
