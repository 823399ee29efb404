/*
 * records.go, part of goavo.
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
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rmera/goavo/chemdb"
)

func runRecords(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("records", flag.ContinueOnError)
	libpath := fs.String("library", "", "record library (sqlite file)")
	save := fs.Bool("import", false, "store the records read from the JSON files in the library")
	del := fs.Int("delete", -1, "remove the record in this row, also from the library")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *save && *libpath == "" {
		return fmt.Errorf("records: -import needs -library")
	}
	ctx := context.Background()
	model := chemdb.NewModel()
	var lib *chemdb.Library
	if *libpath != "" {
		var err error
		lib, err = chemdb.OpenLibrary(*libpath)
		if err != nil {
			return err
		}
		defer lib.Close()
		if !*save {
			if err := lib.Fill(ctx, model); err != nil {
				return err
			}
		}
	}
	for _, name := range fs.Args() {
		recs, err := readRecordFile(name)
		if err != nil {
			return err
		}
		for _, r := range recs {
			if *save {
				id, err := lib.Put(ctx, r)
				if err != nil {
					return err
				}
				r["_id"] = id
			}
			model.Append(r)
		}
	}
	if *del >= 0 {
		id := model.IDAt(*del)
		if !model.RemoveAt(*del) {
			return fmt.Errorf("records: no row %d", *del)
		}
		if lib != nil && id != "" {
			if _, err := lib.Delete(ctx, id); err != nil {
				return err
			}
		}
	}
	return printModel(out, model)
}

func readRecordFile(name string) ([]chemdb.Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return chemdb.ReadRecords(f)
}

func printModel(out io.Writer, m *chemdb.Model) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "#")
	for c := 0; c < m.ColumnCount(); c++ {
		fmt.Fprintf(tw, "\t%s", m.HeaderData(c, chemdb.Horizontal))
	}
	fmt.Fprintln(tw)
	for row := 0; row < m.Count(); row++ {
		fmt.Fprintf(tw, "%d", row)
		for c := 0; c < m.ColumnCount(); c++ {
			fmt.Fprintf(tw, "\t%s", m.FieldAt(row, c))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
