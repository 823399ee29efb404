/*
 * plugins.go, part of goavo.
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
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rmera/goavo/plugindl"
)

func defaultPluginDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plugins"
	}
	return filepath.Join(dir, "goavo", "plugins")
}

func runPlugins(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("plugins", flag.ContinueOnError)
	index := fs.String("index", plugindl.DefaultIndexURL, "URL of the plugin index")
	dir := fs.String("dir", defaultPluginDir(), "directory plugins are installed to")
	install := fs.String("install", "", "install the plugins with these names, separated by commas")
	readme := fs.String("readme", "", "print the readme of the plugin with this name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	C := &plugindl.Client{BaseURL: *index}
	plugins, err := C.FetchIndex(ctx)
	if err != nil {
		return err
	}
	if *install == "" && *readme == "" {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tUPDATED\tDESCRIPTION")
		for _, p := range plugins {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.ReleaseVersion, p.Type, p.UpdatedAt, p.Description)
		}
		return tw.Flush()
	}
	find := func(name string) (plugindl.Plugin, error) {
		for _, p := range plugins {
			if p.Name == name {
				return p, nil
			}
		}
		return plugindl.Plugin{}, fmt.Errorf("plugins: %q is not in the index", name)
	}
	if *readme != "" {
		p, err := find(*readme)
		if err != nil {
			return err
		}
		text, err := C.Readme(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
	}
	if *install != "" {
		var ps []plugindl.Plugin
		for _, name := range strings.Split(*install, ",") {
			p, err := find(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			ps = append(ps, p)
		}
		dirs, err := C.InstallAll(ctx, ps, *dir)
		if err != nil {
			return err
		}
		for i, p := range ps {
			fmt.Fprintf(out, "%s %s installed to %s\n", p.Name, p.ReleaseVersion, dirs[i])
		}
	}
	return nil
}
