package main

import (
	"flag"
	"fmt"

	"golang.org/x/xerrors"

	"github.com/veykril/pk2"
)

const listHelp = `pk2tool list [-flags]

Lists the contents of a pk2 archive.

Example:
  % pk2tool list -archive client.pk2
`

func list(args []string) error {
	fset := flag.NewFlagSet("list", flag.ExitOnError)
	var (
		archive   = fset.String("archive", "", "archive to open")
		key       = fset.String("key", defaultKey, "blowfish key")
		writeTime = fset.Bool("write-time", false, "show file times")
	)
	fset.Usage = usage(fset, listHelp)
	fset.Parse(args)
	if *archive == "" {
		return xerrors.Errorf("list: -archive is required")
	}

	a, err := pk2.OpenFile(*archive, *key)
	if err != nil {
		return xerrors.Errorf("open %s: %w", *archive, err)
	}

	root, err := a.OpenDirectory("/")
	if err != nil {
		return xerrors.Errorf("open root: %w", err)
	}

	return root.ForEachFile(func(relPath string, f *pk2.File) error {
		if *writeTime {
			mtime, _ := f.ModifyTime()
			fmt.Printf("%10d  %s  %s\n", f.Size(), mtime.Format("2006-01-02 15:04:05"), relPath)
		} else {
			fmt.Printf("%10d  %s\n", f.Size(), relPath)
		}
		return nil
	})
}
