package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"golang.org/x/xerrors"

	"github.com/veykril/pk2"
)

const extractHelp = `pk2tool extract [-flags]

Extracts a pk2 archive into a directory.

Example:
  % pk2tool extract -archive client.pk2 -out ./extracted
`

func extract(args []string) error {
	fset := flag.NewFlagSet("extract", flag.ExitOnError)
	var (
		archive   = fset.String("archive", "", "archive to open")
		key       = fset.String("key", defaultKey, "blowfish key")
		out       = fset.String("out", "", "directory to extract into")
		writeTime = fset.Bool("write-time", false, "write modify/access times on extracted files")
	)
	fset.Usage = usage(fset, extractHelp)
	fset.Parse(args)
	if *archive == "" || *out == "" {
		return xerrors.Errorf("extract: -archive and -out are required")
	}

	a, err := pk2.OpenFile(*archive, *key)
	if err != nil {
		return xerrors.Errorf("open %s: %w", *archive, err)
	}

	root, err := a.OpenDirectory("/")
	if err != nil {
		return xerrors.Errorf("open root: %w", err)
	}

	progress := isatty.IsTerminal(os.Stdout.Fd())
	log.Printf("extracting %s to %s", *archive, *out)

	return root.ForEachFile(func(relPath string, f *pk2.File) error {
		dst := filepath.Join(*out, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return xerrors.Errorf("mkdir for %s: %w", dst, err)
		}
		data, err := f.ReadAll()
		if err != nil {
			return xerrors.Errorf("read %s: %w", relPath, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return xerrors.Errorf("write %s: %w", dst, err)
		}
		if *writeTime {
			if mtime, ok := f.ModifyTime(); ok {
				if err := os.Chtimes(dst, mtime, mtime); err != nil {
					log.Printf("warning: set times on %s: %v", dst, err)
				}
			}
		}
		if progress {
			fmt.Fprintf(os.Stderr, "\r%s", relPath)
		}
		return nil
	})
}
