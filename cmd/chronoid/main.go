// Package main is the entry point for chronoid, the operator CLI for
// minting and inspecting Chrono-IDs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dilipvamsi/chrono-id/chronoid"
)

const usage = "Usage: chronoid <new|inspect|parse|variants> [flags]"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "new":
		os.Exit(runNew(os.Args[2:]))
	case "inspect":
		os.Exit(runInspect(os.Args[2:]))
	case "parse":
		os.Exit(runParse(os.Args[2:]))
	case "variants":
		os.Exit(runVariants(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n%s\n", command, usage)
		os.Exit(1)
	}
}

func lookup(name string) (*chronoid.Variant, bool) {
	v, ok := chronoid.Lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant: %s\n", name)
	}
	return v, ok
}

// printID writes one decoded ID as an aligned detail block.
func printID(id chronoid.ID) {
	v := id.Variant()
	raw := strconv.FormatUint(id.Raw(), 10)
	if v.Signed {
		raw = strconv.FormatInt(id.Int64(), 10)
	}
	fmt.Printf("variant:  %s\n", v.Name)
	fmt.Printf("raw:      %s\n", raw)
	fmt.Printf("hex:      %s\n", id.Hex())
	fmt.Printf("iso:      %s\n", id.ISO())
	fmt.Printf("units:    %d\n", id.Units())
	fmt.Printf("entropy:  %d\n", id.Entropy())
	fmt.Printf("time:     %s\n", id.Time().UTC().Format(time.RFC3339Nano))
}

func runNew(args []string) int {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	variant := fs.String("variant", "UChrono64ms", "Catalog variant name or alias")
	count := fs.Int("count", 1, "Number of IDs to mint")
	at := fs.String("at", "", "Mint for this ISO-8601 instant instead of now")
	quiet := fs.Bool("quiet", false, "Print only the hex value, one per line")
	fs.Parse(args)

	v, ok := lookup(*variant)
	if !ok {
		return 1
	}
	if *count < 1 {
		fmt.Fprintln(os.Stderr, "Error: count must be at least 1")
		return 1
	}

	var instant time.Time
	if *at != "" {
		id, err := v.FromISOEntropy(*at, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		instant = id.Time()
	}

	g := chronoid.NewGenerator(v)
	for i := 0; i < *count; i++ {
		var id chronoid.ID
		var err error
		if *at != "" {
			id, err = g.NextAt(instant)
		} else {
			id, err = g.Next()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if *quiet {
			fmt.Println(id.Hex())
		} else {
			if i > 0 {
				fmt.Println()
			}
			printID(id)
		}
	}
	return 0
}

func runInspect(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	variant := fs.String("variant", "UChrono64ms", "Catalog variant name or alias")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: chronoid inspect [-variant name] <raw>...")
		return 1
	}
	v, ok := lookup(*variant)
	if !ok {
		return 1
	}

	for i, arg := range fs.Args() {
		var id chronoid.ID
		if v.Signed {
			raw, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid raw value: %s\n", arg)
				return 1
			}
			id = v.FromInt64(raw)
		} else {
			raw, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid raw value: %s\n", arg)
				return 1
			}
			id = v.FromRaw(raw)
		}
		if i > 0 {
			fmt.Println()
		}
		printID(id)
	}
	return 0
}

func runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	variant := fs.String("variant", "UChrono64ms", "Catalog variant name or alias")
	format := fs.String("format", "auto", "Input format: iso, hex, or auto")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: chronoid parse [-variant name] [-format iso|hex|auto] <value>...")
		return 1
	}
	v, ok := lookup(*variant)
	if !ok {
		return 1
	}

	for i, arg := range fs.Args() {
		var id chronoid.ID
		var err error
		switch *format {
		case "iso":
			id, err = v.FromISO(arg)
		case "hex":
			id, err = v.FromHex(arg)
		case "auto":
			id, err = v.FromISO(arg)
			if err != nil {
				var hexErr error
				id, hexErr = v.FromHex(arg)
				if hexErr != nil {
					// Report the ISO error: timestamps are the common input.
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					return 1
				}
				err = nil
			}
		default:
			fmt.Fprintf(os.Stderr, "Error: unsupported format: %s\n", *format)
			return 1
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if i > 0 {
			fmt.Println()
		}
		printID(id)
	}
	return 0
}

func runVariants(args []string) int {
	fs := flag.NewFlagSet("variants", flag.ExitOnError)
	fs.Parse(args)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWIDTH\tSIGNED\tEPOCH\tPRECISION\tTIME\tNODE\tSEQ")
	for _, v := range chronoid.Variants() {
		fmt.Fprintf(w, "%s\t%d\t%t\t%s\t%s\t%d\t%d\t%d\n",
			v.Name, v.Width, v.Signed, v.EpochDate(), v.Precision,
			v.TimeBits(), v.NodeBits, v.SeqBits)
	}
	w.Flush()
	return 0
}
