// Command pk2tool extracts, packs, repacks, and lists PK2 archives from the
// command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// defaultKey is the canonical game key; most retail archives use it, and the
// format is designed so that fact is verifiable in 3 bytes of comparison.
const defaultKey = "169841"

func usage(fset *flag.FlagSet, help string) func() {
	return func() {
		fmt.Fprintln(os.Stderr, help)
		fset.PrintDefaults()
	}
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, topHelp)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = extract(os.Args[2:])
	case "pack":
		err = pack(os.Args[2:])
	case "repack":
		err = repack(os.Args[2:])
	case "list":
		err = list(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Fprintln(os.Stderr, topHelp)
		return
	default:
		fmt.Fprintf(os.Stderr, "pk2tool: unknown command %q\n\n%s\n", os.Args[1], topHelp)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("pk2tool %s: %+v", os.Args[1], err)
	}
}

const topHelp = `pk2tool <command> [-flags]

Commands:
  extract  -archive -key -out [-write-time]   extract an archive into a directory
  pack     -directory -key [-archive]         pack a directory into a new archive
  repack   -archive -key -output-key [-out]   rewrite an archive, dropping fragmentation
  list     -archive -key [-write-time]        list an archive's contents
`
