package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/Shimizu-Technology/HafaPass-sub001"
	"github.com/Shimizu-Technology/HafaPass-sub001/coding"
)

var g = struct {
	scale   int             // image pixels per module
	border  int             // quiet zone
	palette *[2]color.Color // nil unless -B or -F is given
	rev     bool            // reverse colours
	fn      string          // output file, "" for standard output
	out     output          // output format
	enc     qr.Encoder      // level, Latin-1, scoring
	bg, fg  rgba            // colours
	colSet  bool            // -B or -F seen
	iso     bool            // ISO mask scoring
}{
	border: qr.DefaultBorder,
	bg:     colourNames["white"],
	fg:     colourNames["black"],
}

const (
	title   = "Ticket QR code generator"
	release = "1.0.0"
)

// banner is printed by -V.
const banner = title + ", version " + release + `
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets
Use of this program is governed by a BSD-style license.`

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, title, "\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.  Text is encoded in byte mode as is, or converted
to Latin-1 with -1, into a QR code of version 1 to 6.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(banner)
	os.Exit(0)
}

type rgba struct {
	R, G, B, A uint8
}

var colourNames = map[string]rgba{
	"black": {0x00, 0x00, 0x00, 0xff},
	"white": {0xff, 0xff, 0xff, 0xff},
}

func (c *rgba) String() string {
	for name, v := range colourNames {
		if *c == v {
			return name
		}
	}
	s := hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
	if c.A == 0xff {
		return s[:6]
	}
	return s
}

// Set parses a colour given as 3, 4, 6 or 8 hex digits, or "black"
// or "white".  Short forms repeat each digit; alpha defaults to ff.
func (c *rgba) Set(s string, _ getopt.Option) error {
	g.colSet = true
	if v, ok := colourNames[strings.ToLower(s)]; ok {
		*c = v
		return nil
	}
	h := []byte(s)
	if len(h) == 3 || len(h) == 4 {
		h = make([]byte, 0, 2*len(s))
		for i := 0; i < len(s); i++ {
			h = append(h, s[i], s[i])
		}
	}
	if len(h) == 6 {
		h = append(h, "ff"...)
	}
	var p [4]byte
	if len(h) != 8 {
		return fmt.Errorf("%q: bad colour spec", s)
	}
	if _, err := hex.Decode(p[:], h); err != nil {
		return fmt.Errorf("%q: bad colour spec", s)
	}
	*c = rgba{p[0], p[1], p[2], p[3]}
	return nil
}

// An output renders a code in one file format.
type output struct {
	name string
	enc  func(*qr.Code, io.Writer) error
}

var outputs = []output{
	{"png", (*qr.Code).EncodePNG},
	{"pbm", (*qr.Code).EncodePBM},
	{"utf8", utf8Text},
	{"ascii", ascii},
}

// formatNames lists the accepted output types.  Each output is
// accepted with an "i" suffix for inverted colours.
func formatNames() []string {
	var names []string
	for _, o := range outputs {
		names = append(names, o.name, o.name+"i")
	}
	return names
}

// lookupFormat returns the output named s and whether s asks for
// inverted colours.
func lookupFormat(s string) (o output, inv, ok bool) {
	for _, o := range outputs {
		switch s {
		case o.name:
			return o, false, true
		case o.name + "i":
			return o, true, true
		}
	}
	return output{}, false, false
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "print this help and exit").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright and exit").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'B', "light module colour; see -F",
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', "dark module colour, "+
		`3, 4, 6 or 8 hex digits, "black" or "white"; png output only`,
		"RGB[A]|name")
	getopt.Flag(&g.enc.Latin1, '1', "store text as Latin-1 instead of UTF-8")
	getopt.Flag(&g.iso, 'S', "choose the mask by all four ISO/IEC 18004 "+
		"penalty rules, not just runs and balance")
	getopt.Flag(&g.border, 'm', "quiet zone width in modules", "margin")
	file := getopt.Flag(&g.fn, 'o', `write to file; "-" is standard output`,
		"file")
	def := strings.ToLower(qr.DefaultLevel.String())
	level := getopt.Enum('l', []string{"l", "m", "q", "h", "L", "M", "Q", "H"},
		def, "error correction level, L lowest, H highest", "l|m|q|h")
	scale := getopt.Unsigned('s', 4, &(getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 1, Max: 1 << 12}),
		"image pixels per module; png and pbm output only", "scale")
	names := formatNames()
	format := getopt.Enum('t', names, "", "output type: "+
		strings.Join(names, ", ")+`; an "i" suffix inverts colours; `+
		"without -o the default is utf8 on a terminal, png otherwise",
		"type")
	getopt.Parse()

	if g.border < 0 {
		fmt.Fprintln(os.Stderr, "qr: negative margin")
		usage()
	}
	g.scale = int(*scale)
	g.enc.Level = qr.Level(strings.Index("lmqh", strings.ToLower(*level)))
	if g.iso {
		g.enc.Scoring = coding.ISO
	}
	name := *format
	if name == "" {
		name = "png"
		if !file.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			name = "utf8"
		}
	}
	g.out, g.rev, _ = lookupFormat(name)
	if g.fn == "-" {
		g.fn = ""
	}
	if g.colSet {
		g.palette = &[2]color.Color{color.RGBA(g.bg), color.RGBA(g.fg)}
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()
	text, err := readText(getopt.Args(), os.Stdin)
	if err != nil {
		log.Fatalln(err)
	}
	c, err := g.enc.Encode(text)
	if err != nil {
		log.Fatalln(err)
	}
	if err := write(c); err != nil {
		log.Fatalln(err)
	}
}

// readText returns args joined by spaces or, with no args, all of r
// with CRLF line ends converted and one final newline removed.
func readText(args []string, r io.Reader) (string, error) {
	if len(args) != 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	return strings.TrimSuffix(s, "\n"), nil
}

func write(c *qr.Code) error {
	c.Scale, c.Border = g.scale, g.border
	c.Palette, c.Reverse = g.palette, g.rev
	if g.fn == "" {
		return g.out.enc(c, os.Stdout)
	}
	f, err := os.Create(g.fn)
	if err != nil {
		return err
	}
	if err := g.out.enc(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func utf8Text(c *qr.Code, w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

// ascii writes c as text, two characters per QR pixel, "#" for black.
func ascii(c *qr.Code, w io.Writer) error {
	bw := bufio.NewWriter(w)
	dark, light := "##", "  "
	if c.Reverse {
		dark, light = light, dark
	}
	for y := -c.Border; y < c.Size+c.Border; y++ {
		for x := -c.Border; x < c.Size+c.Border; x++ {
			if c.Black(x, y) {
				bw.WriteString(dark)
			} else {
				bw.WriteString(light)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
