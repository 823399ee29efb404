/*
 * plugindl.go, part of goavo.
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

//Package plugindl lists the plugins published in a plugin index and
//installs them from their release archives.
package plugindl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

//DefaultIndexURL is the index used when Client.BaseURL is empty.
const DefaultIndexURL = "https://avogadro.cc/plugins.json"

//maxArchive bounds the size of a downloaded archive.
const maxArchive = 64 << 20

//Plugin is one entry of the index.
type Plugin struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ReleaseVersion string `json:"release_version"`
	Type           string `json:"type"`
	UpdatedAt      string `json:"updated_at"`
	ZipballURL     string `json:"zipball_url"`
	ReadmeURL      string `json:"readme_url"`
}

//Client talks to the plugin index. The zero value uses DefaultIndexURL and
//http.DefaultClient.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func (C *Client) httpClient() *http.Client {
	if C.HTTP != nil {
		return C.HTTP
	}
	return http.DefaultClient
}

func (C *Client) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("plugindl: %w", err)
	}
	resp, err := C.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("plugindl: GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("plugindl: reading %s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("plugindl: %s is larger than %d bytes", url, limit)
	}
	return data, nil
}

//StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (E *StatusError) Error() string {
	return fmt.Sprintf("plugindl: GET %s: %d %s", E.URL, E.Code, http.StatusText(E.Code))
}

//FetchIndex downloads and decodes the plugin index.
func (C *Client) FetchIndex(ctx context.Context) ([]Plugin, error) {
	url := C.BaseURL
	if url == "" {
		url = DefaultIndexURL
	}
	data, err := C.get(ctx, url, maxArchive)
	if err != nil {
		return nil, err
	}
	var plugins []Plugin
	if err := json.Unmarshal(data, &plugins); err != nil {
		return nil, fmt.Errorf("plugindl: decoding index: %w", err)
	}
	return plugins, nil
}

//Readme returns the README of p as text.
func (C *Client) Readme(ctx context.Context, p Plugin) (string, error) {
	if p.ReadmeURL == "" {
		return "", fmt.Errorf("plugindl: %s has no README", p.Name)
	}
	data, err := C.get(ctx, p.ReadmeURL, maxArchive)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

//pathPart checks that s can be used as a single directory name.
func pathPart(what, s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("plugindl: bad plugin %s %q", what, s)
	}
	return nil
}

//InstallDir returns the directory where p is installed under root. Plugins
//without a type go under "other". A name or type that isn't a plain
//directory name is an error, as is any result not strictly inside root.
func InstallDir(root string, p Plugin) (string, error) {
	kind := p.Type
	if kind == "" {
		kind = "other"
	}
	if err := pathPart("type", kind); err != nil {
		return "", err
	}
	if err := pathPart("name", p.Name); err != nil {
		return "", err
	}
	dest := filepath.Join(root, kind, p.Name)
	rel, err := filepath.Rel(filepath.Clean(root), dest)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("plugindl: %s is not inside %s", dest, root)
	}
	return dest, nil
}

//Install downloads the release archive of p and extracts it to
//InstallDir(root, p), replacing a previous installation. It returns the
//installation directory.
func (C *Client) Install(ctx context.Context, p Plugin, root string) (string, error) {
	if p.Name == "" || p.ZipballURL == "" {
		return "", fmt.Errorf("plugindl: plugin %q has no archive to install", p.Name)
	}
	dest, err := InstallDir(root, p)
	if err != nil {
		return "", err
	}
	data, err := C.get(ctx, p.ZipballURL, maxArchive)
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("plugindl: removing old %s: %w", dest, err)
	}
	if err := Extract(data, dest); err != nil {
		return "", err
	}
	return dest, nil
}

//InstallAll installs every plugin in ps, a few at a time. The returned
//directories are in the order of ps. The first failure cancels the
//remaining downloads.
func (C *Client) InstallAll(ctx context.Context, ps []Plugin, root string) ([]string, error) {
	dirs := make([]string, len(ps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range ps {
		i, p := i, p
		g.Go(func() error {
			dir, err := C.Install(ctx, p, root)
			if err != nil {
				return err
			}
			dirs[i] = dir
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dirs, nil
}

//Extract unpacks the zip archive in data into dest. When every entry lives
//under a single top directory, as in the archives GitHub makes for
//releases, that directory is dropped. Entries that would land outside dest
//are an error.
func Extract(data []byte, dest string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("plugindl: reading archive: %w", err)
	}
	prefix := commonTop(zr.File)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("plugindl: %w", err)
	}
	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, prefix)
		if name == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(name))
		rel, err := filepath.Rel(dest, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("plugindl: archive entry %q escapes the install directory", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("plugindl: %w", err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("plugindl: %w", err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("plugindl: opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("plugindl: %w", err)
	}
	if _, err := io.Copy(out, io.LimitReader(rc, maxArchive)); err != nil {
		out.Close()
		return fmt.Errorf("plugindl: extracting %s: %w", f.Name, err)
	}
	return out.Close()
}

//commonTop returns "dir/" if every entry is inside dir, or "".
func commonTop(files []*zip.File) string {
	var top string
	for _, f := range files {
		i := strings.IndexByte(f.Name, '/')
		if i < 0 {
			return ""
		}
		if top == "" {
			top = f.Name[:i+1]
		} else if f.Name[:i+1] != top {
			return ""
		}
	}
	return top
}
