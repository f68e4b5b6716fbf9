package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"

	"github.com/veykril/pk2"
)

const packHelp = `pk2tool pack [-flags]

Packs a directory into a pk2 archive.

Example:
  % pk2tool pack -directory ./client_files -archive client.pk2
`

func pack(args []string) error {
	fset := flag.NewFlagSet("pack", flag.ExitOnError)
	var (
		directory = fset.String("directory", "", "directory to pack")
		key       = fset.String("key", defaultKey, "blowfish key for the resulting archive")
		archive   = fset.String("archive", "", "output archive path (default: <directory>.pk2)")
	)
	fset.Usage = usage(fset, packHelp)
	fset.Parse(args)
	if *directory == "" {
		return xerrors.Errorf("pack: -directory is required")
	}

	info, err := os.Stat(*directory)
	if err != nil || !info.IsDir() {
		return xerrors.Errorf("pack: %s is not a directory", *directory)
	}

	outPath := *archive
	if outPath == "" {
		outPath = strings.TrimSuffix(filepath.Clean(*directory), string(filepath.Separator)) + ".pk2"
	}

	a, err := pk2.CreateFile(outPath, *key)
	if err != nil {
		return xerrors.Errorf("create %s: %w", outPath, err)
	}

	log.Printf("packing %s into %s", *directory, outPath)

	return filepath.WalkDir(*directory, func(fsPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(*directory, fsPath)
		if err != nil {
			return err
		}
		archivePath := "/" + filepath.ToSlash(rel)

		data, err := os.ReadFile(fsPath)
		if err != nil {
			return xerrors.Errorf("read %s: %w", fsPath, err)
		}

		out, err := a.CreateFileHandle(archivePath)
		if err != nil {
			return xerrors.Errorf("create entry %s: %w", archivePath, err)
		}
		if _, err := out.Write(data); err != nil {
			return xerrors.Errorf("write %s: %w", archivePath, err)
		}
		return out.Flush()
	})
}
