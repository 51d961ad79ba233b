package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/gemalto/flume"

	"github.com/gemalto/bertlv-go"
	"github.com/gemalto/bertlv-go/internal/hexutil"
)

const FormatText = "text"
const FormatSimple = "simple"
const FormatHex = "hex"

var log = flume.New("pptlv")

func main() {

	flag.Usage = func() {
		s := `pptlv - BER-TLV pretty printer

Usage:  pptlv [options] [input]

Pretty prints BER-TLV encoded data objects.  Input is hex, read from
the argument, a file, or standard in.  Whitespace, colons, dashes, and
a leading "0x" in the input are ignored, so the forms most hex dump
tools produce can be pasted in directly.

The default output format is "text", a tree rendering optimized for
human readability.  The "simple" format reads the input as SIMPLE-TLV
data objects, the encoding PIV card objects use inside their '53'
wrappers.  The "hex" format echoes the input back as normalized
lowercase hex.

Examples:

    pptlv 6f0e8407a00000030800005003504956
    echo "6f0e 8407 a000 0003 0800 0050 0350 4956" | pptlv

Output (in 'text' format):

    6F (14):
      84 (7): 0xa0000003080000
      50 (3): 0x504956

simple format:

    pptlv -o simple 3e043082aabbfe00

    3E (4): 0x3082aabb
    FE (0):
`
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), s)
		flag.PrintDefaults()
	}

	var outFormat string
	var inFile string
	var verbose bool
	flag.StringVar(&outFormat, "o", "", "output format: text|simple|hex, defaults to text")
	flag.StringVar(&inFile, "f", "", "input file name, defaults to stdin")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")

	flag.Parse()

	level := flume.InfoLevel
	if verbose {
		level = flume.DebugLevel
	}
	flume.Configure(flume.Config{
		Development:  true,
		DefaultLevel: level,
	})

	buf := bytes.NewBuffer(nil)

	switch {
	case inFile != "":
		file, err := ioutil.ReadFile(inFile)
		if err != nil {
			fail("error reading input file", err)
		}
		buf = bytes.NewBuffer(file)
		log.Debug("read input file", "file", inFile, "len", buf.Len())
	case flag.Arg(0) != "":
		buf.WriteString(flag.Arg(0))
	default:
		scanner := bufio.NewScanner(os.Stdin)

		for scanner.Scan() {
			buf.Write(scanner.Bytes())
		}

		if err := scanner.Err(); err != nil {
			fail("error reading standard input", err)
		}
		log.Debug("read standard input", "len", buf.Len())
	}

	raw, err := hexutil.Parse(buf.String())
	if err != nil {
		fail("error parsing input", err)
	}

	outFormat = strings.ToLower(outFormat)
	if outFormat == "" {
		outFormat = FormatText
	}

	log.Debug("printing", "format", outFormat, "len", len(raw))

	switch outFormat {
	case FormatText:
		if err := bertlv.Print(os.Stdout, "", raw); err != nil {
			fail("error printing", err)
		}
	case FormatSimple:
		if err := bertlv.PrintSimple(os.Stdout, "", raw); err != nil {
			fail("error printing", err)
		}
	case FormatHex:
		fmt.Println(hex.EncodeToString(raw))
	default:
		fail("invalid output format: "+outFormat, nil)
	}
}

func fail(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, msg+":", err)
	} else {
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}
