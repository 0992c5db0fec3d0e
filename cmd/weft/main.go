// weft - pipeline tools for linguistic transformation of text and markup
//
// Usage:
//
//	weft text                      package stdin (plain text) as WEFT
//	weft markup [-begin state]     package stdin (XML/HTML) as WEFT
//	weft split                     split content words into sub-words
//	weft hyphenate [options]       mark hyphen points in content words
//	weft escape -table file        apply a Woof escape table
//	weft unpack [-map file]        reconstruct the original body
//	weft json                      dump parsed lines as JSON
//	weft version                   print version info
//
// Every tool reads a stream from stdin and writes its result to
// stdout; a fatal error leaves a one-line diagnostic on stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/weft/backend/jsonout"
	"github.com/npillmayer/weft/backend/unpack"
	"github.com/npillmayer/weft/core"
	"github.com/npillmayer/weft/engine/hyphen"
	"github.com/npillmayer/weft/engine/hyphen/texpat"
	"github.com/npillmayer/weft/engine/weft"
	"github.com/npillmayer/weft/engine/woof"
	"github.com/npillmayer/weft/engine/words"
	"github.com/npillmayer/weft/input/markup"
	"github.com/npillmayer/weft/input/plaintext"
)

const toolVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	var err error
	switch cmd := os.Args[1]; cmd {
	case "text":
		err = runText(os.Args[2:])
	case "markup":
		err = runMarkup(os.Args[2:])
	case "split":
		err = runSplit(os.Args[2:])
	case "hyphenate":
		err = runHyphenate(os.Args[2:])
	case "escape":
		err = runEscape(os.Args[2:])
	case "unpack":
		err = runUnpack(os.Args[2:])
	case "json":
		err = runJSON(os.Args[2:])
	case "version":
		fmt.Printf("weft %s (format %s)\n", toolVersion, weft.Signature)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "weft: unknown command %q\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		core.UserError(err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: weft <command> [options]

commands:
  text        package stdin (plain text) as WEFT
  markup      package stdin (XML/HTML) as WEFT; -begin sets the initial state
  split       split content words into linguistic sub-words
  hyphenate   mark hyphen points; -load, -style, -special, -list
  escape      apply a Woof escape table; -table is required
  unpack      reconstruct the original body; -map tees the map records
  json        dump parsed lines as JSON
  version     print version info`)
}

func runText(args []string) error {
	if err := parseFlags("text", args, func(fs *flag.FlagSet) {}); err != nil {
		return err
	}
	return plaintext.Pack(os.Stdin, os.Stdout)
}

func runMarkup(args []string) error {
	var begin string
	if err := parseFlags("markup", args, func(fs *flag.FlagSet) {
		fs.StringVar(&begin, "begin", "char", "initial tokenizer state")
	}); err != nil {
		return err
	}
	loc, err := markup.ParseLocation(begin)
	if err != nil {
		return err
	}
	return markup.Pack(os.Stdin, os.Stdout, loc)
}

func runSplit(args []string) error {
	if err := parseFlags("split", args, func(fs *flag.FlagSet) {}); err != nil {
		return err
	}
	return words.Apply(os.Stdin, os.Stdout)
}

func runHyphenate(args []string) error {
	var load, style, special, list string
	if err := parseFlags("hyphenate", args, func(fs *flag.FlagSet) {
		fs.StringVar(&load, "load", "", "TeX pattern file")
		fs.StringVar(&style, "style", "utf8", "pattern file encoding: utf8, czech, german")
		fs.StringVar(&special, "special", "", "specialized word list")
		fs.StringVar(&list, "list", "", "write the sorted word list to this file")
	}); err != nil {
		return err
	}
	h := hyphen.New()
	if load != "" {
		st, err := texpat.ParseStyle(style)
		if err != nil {
			return err
		}
		f, err := os.Open(load)
		if err != nil {
			return core.WrapError(err, core.EMISSING, "cannot open pattern file %q", load)
		}
		patterns, err := texpat.Load(f, st)
		f.Close()
		if err != nil {
			return err
		}
		h.UsePatterns(patterns)
	}
	if special != "" {
		f, err := os.Open(special)
		if err != nil {
			return core.WrapError(err, core.EMISSING, "cannot open word list %q", special)
		}
		specials, err := hyphen.LoadWordList(f)
		f.Close()
		if err != nil {
			return err
		}
		h.UseSpecial(specials)
	}
	if err := h.Apply(os.Stdin, os.Stdout); err != nil {
		return err
	}
	if list != "" {
		f, err := os.Create(list)
		if err != nil {
			return core.WrapError(err, core.EIO, "cannot create word list %q", list)
		}
		defer f.Close()
		return h.WriteWordList(f)
	}
	return nil
}

func runEscape(args []string) error {
	var tablePath string
	if err := parseFlags("escape", args, func(fs *flag.FlagSet) {
		fs.StringVar(&tablePath, "table", "", "Woof escape table file")
	}); err != nil {
		return err
	}
	if tablePath == "" {
		return core.Error(core.EMISSING, "an escape table is required (-table)")
	}
	f, err := os.Open(tablePath)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot open escape table %q", tablePath)
	}
	table, err := woof.LoadTable(f)
	f.Close()
	if err != nil {
		return err
	}
	return table.Apply(os.Stdin, os.Stdout)
}

func runUnpack(args []string) error {
	var mapPath string
	if err := parseFlags("unpack", args, func(fs *flag.FlagSet) {
		fs.StringVar(&mapPath, "map", "", "write the embedded map to this file")
	}); err != nil {
		return err
	}
	var mapOut *os.File
	if mapPath != "" {
		var err error
		if mapOut, err = os.Create(mapPath); err != nil {
			return core.WrapError(err, core.EIO, "cannot create map file %q", mapPath)
		}
		defer mapOut.Close()
	}
	if mapOut != nil {
		return unpack.Unpack(os.Stdin, os.Stdout, mapOut)
	}
	return unpack.Unpack(os.Stdin, os.Stdout, nil)
}

func runJSON(args []string) error {
	if err := parseFlags("json", args, func(fs *flag.FlagSet) {}); err != nil {
		return err
	}
	return jsonout.Emit(os.Stdin, os.Stdout)
}

// parseFlags runs a subcommand flag set and turns flag failures into
// argument errors.
func parseFlags(name string, args []string, register func(*flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	register(fs)
	if err := fs.Parse(args); err != nil {
		return core.WrapError(err, core.EINVALID, "bad arguments for %q", name)
	}
	if fs.NArg() > 0 {
		return core.Error(core.EINVALID, "%q takes no positional arguments", name)
	}
	return nil
}
