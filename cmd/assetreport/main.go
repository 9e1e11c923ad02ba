// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command assetreport minifies the site's CSS and JavaScript ahead of
// deployment and prints a size report. Minified copies are written next
// to their sources with a .min suffix so the originals stay editable.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

type result struct {
	path     string
	original int
	minified int
}

func main() {
	dir := flag.String("dir", "./public", "Asset directory to scan")
	write := flag.Bool("write", false, "Write .min.css/.min.js files next to sources")
	flag.Parse()

	if err := run(*dir, *write); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "assetreport:", err)
		os.Exit(1)
	}
}

func run(dir string, write bool) error {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)

	var results []result
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		mediatype := mediaType(path)
		if mediatype == "" || strings.Contains(path, ".min.") {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := m.Minify(mediatype, &out, bytes.NewReader(src)); err != nil {
			return fmt.Errorf("minifying %s: %w", path, err)
		}

		if write {
			if err := os.WriteFile(minPath(path), out.Bytes(), 0644); err != nil {
				return err
			}
		}

		results = append(results, result{path: path, original: len(src), minified: out.Len()})
		return nil
	})
	if err != nil {
		return err
	}

	report(results)
	return nil
}

// mediaType maps a file extension to the registered minifier, or "" to skip.
func mediaType(path string) string {
	switch filepath.Ext(path) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	}
	return ""
}

// minPath turns style.css into style.min.css.
func minPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".min" + ext
}

func report(results []result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tORIGINAL\tMINIFIED\tSAVED")

	var totalOrig, totalMin int
	for _, r := range results {
		totalOrig += r.original
		totalMin += r.minified
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.path, r.original, r.minified, saved(r.original, r.minified))
	}
	_, _ = fmt.Fprintf(w, "TOTAL\t%d\t%d\t%s\n", totalOrig, totalMin, saved(totalOrig, totalMin))
	_ = w.Flush()
}

func saved(original, minified int) string {
	if original == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(original-minified)/float64(original))
}
