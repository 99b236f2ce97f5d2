// Command tiktoken is a small CLI wrapper around the tiktoken package:
// encode/decode/count text against a named encoding or model, and list
// the encodings registered in the process.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tiktoken "github.com/go-tiktoken/tiktoken"
)

func die(err error) {
	fmt.Fprintln(os.Stderr, "tiktoken:", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tiktoken [encode|decode|count|list] [flags]")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "list":
		runList()
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "count":
		runCount(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func runList() {
	names := tiktoken.ListEncodingNames()
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveEncoding(name, model *string) *tiktoken.Encoding {
	if *name != "" {
		enc, err := tiktoken.GetEncoding(*name)
		if err != nil {
			die(err)
		}
		return enc
	}
	if *model != "" {
		enc, err := tiktoken.EncodingForModel(*model)
		if err != nil {
			die(err)
		}
		return enc
	}
	die(fmt.Errorf("one of -encoding or -model is required"))
	return nil
}

func readAllStdin() string {
	var sb strings.Builder
	r := bufio.NewReader(os.Stdin)
	if _, err := io.Copy(&sb, r); err != nil {
		die(err)
	}
	return sb.String()
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	name := fs.String("encoding", "", "registered encoding name")
	model := fs.String("model", "", "model name to resolve an encoding for")
	allowSpecial := fs.Bool("allow-special", false, "permit every registered special token as a literal")
	_ = fs.Parse(args)

	enc := resolveEncoding(name, model)
	text := readAllStdin()

	var toks []tiktoken.Rank
	var err error
	if *allowSpecial {
		toks, err = enc.Encode(text, tiktoken.AllowedSpecialAll, tiktoken.DisallowedSpecialNone)
	} else {
		toks, err = enc.EncodeOrdinary(text)
	}
	if err != nil {
		die(err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(toks); err != nil {
		die(err)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	name := fs.String("encoding", "", "registered encoding name")
	model := fs.String("model", "", "model name to resolve an encoding for")
	replace := fs.Bool("replace", false, "substitute U+FFFD for invalid byte sequences instead of failing")
	_ = fs.Parse(args)

	enc := resolveEncoding(name, model)

	var toks []tiktoken.Rank
	if err := json.NewDecoder(os.Stdin).Decode(&toks); err != nil {
		die(err)
	}

	mode := tiktoken.DecodeStrict
	if *replace {
		mode = tiktoken.DecodeReplace
	}
	text, err := enc.Decode(toks, mode)
	if err != nil {
		die(err)
	}
	fmt.Println(text)
}

func runCount(args []string) {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	name := fs.String("encoding", "", "registered encoding name")
	model := fs.String("model", "", "model name to resolve an encoding for")
	_ = fs.Parse(args)

	enc := resolveEncoding(name, model)
	text := readAllStdin()

	toks, err := enc.EncodeOrdinary(text)
	if err != nil {
		die(err)
	}
	fmt.Println(strconv.Itoa(len(toks)))
}
