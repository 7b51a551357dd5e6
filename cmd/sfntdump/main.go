// fontkit.dev/sfnt - a library for reading OpenType/TrueType font files
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fontkit.dev/sfnt"
	"fontkit.dev/sfnt/table"
)

func main() {
	list := flag.Bool("l", false, "print table-directory info per subfont")
	tables := flag.String("t", "", "comma-separated list of tables to dump (default: all)")
	ttcIndices := flag.String("y", "", "comma-separated list of TTC member indices to process (default: all)")
	output := flag.String("o", "", "output path (default: stdout)")
	flag.BoolVar(list, "list", false, "same as -l")
	flag.StringVar(tables, "tables", "", "same as -t")
	flag.StringVar(ttcIndices, "ttc-indices", "", "same as -y")
	flag.StringVar(output, "output", "", "same as -o")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-l] [-t tag1,tag2,...] [-y n1,n2,...] [-o file] <input>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	container, err := sfnt.Open(raw)
	if err != nil {
		reportErr(err)
		os.Exit(1)
	}

	indices, err := parseIndices(*ttcIndices, len(container.Fonts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var tags []table.Tag
	if *tables != "" {
		for _, s := range strings.Split(*tables, ",") {
			tags = append(tags, table.MakeTag(strings.TrimSpace(s)))
		}
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating %s: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	for _, i := range indices {
		font := container.Fonts[i]
		if err := parseFont(font, tags); err != nil {
			reportErr(err)
			os.Exit(1)
		}
		if *list {
			fmt.Fprintf(out, "# subfont %d\n%s", i, font.FormatInfo("  "))
		}
	}
}

func parseFont(font *sfnt.Font, tags []table.Tag) error {
	if len(tags) == 0 {
		return font.Parse()
	}
	for _, tag := range tags {
		if !font.Contains(tag) {
			fmt.Fprintf(os.Stderr, "note: table %q not present, skipping\n", tag.String())
			continue
		}
		if err := font.ParseTable(tag); err != nil {
			return err
		}
	}
	return nil
}

func parseIndices(spec string, numFonts int) ([]int, error) {
	if spec == "" {
		out := make([]int, numFonts)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	var out []int
	for _, s := range strings.Split(spec, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid TTC index %q: %w", s, err)
		}
		if n < 0 || n >= numFonts {
			return nil, fmt.Errorf("TTC index %d out of range [0,%d)", n, numFonts)
		}
		out = append(out, n)
	}
	return out, nil
}

func reportErr(err error) {
	if e, ok := err.(*table.Error); ok {
		fmt.Fprintf(os.Stderr, "error (%s): %v\n", e.Kind, err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
