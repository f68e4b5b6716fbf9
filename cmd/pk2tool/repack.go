package main

import (
	"flag"
	"log"
	"strings"

	"golang.org/x/xerrors"

	"github.com/veykril/pk2"
)

const repackHelp = `pk2tool repack [-flags]

Repackages an archive into a new one, dropping the fragmentation
accumulated from overwrites and deletes: every live file is copied to a
fresh, compact archive rather than rewritten in place.

Example:
  % pk2tool repack -archive client.pk2 -out client.repacked.pk2
`

func repack(args []string) error {
	fset := flag.NewFlagSet("repack", flag.ExitOnError)
	var (
		archive   = fset.String("archive", "", "archive to open")
		key       = fset.String("key", defaultKey, "blowfish key")
		outputKey = fset.String("output-key", defaultKey, "blowfish key for the new archive")
		out       = fset.String("out", "", "output archive path (default: <archive>.repack.pk2)")
	)
	fset.Usage = usage(fset, repackHelp)
	fset.Parse(args)
	if *archive == "" {
		return xerrors.Errorf("repack: -archive is required")
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(*archive, ".pk2") + ".repack.pk2"
	}

	in, err := pk2.OpenFile(*archive, *key)
	if err != nil {
		return xerrors.Errorf("open %s: %w", *archive, err)
	}

	out2, err := pk2.CreateFile(outPath, *outputKey)
	if err != nil {
		return xerrors.Errorf("create %s: %w", outPath, err)
	}

	root, err := in.OpenDirectory("/")
	if err != nil {
		return xerrors.Errorf("open root: %w", err)
	}

	log.Printf("repacking %s into %s", *archive, outPath)

	return root.ForEachFile(func(relPath string, f *pk2.File) error {
		data, err := f.ReadAll()
		if err != nil {
			return xerrors.Errorf("read %s: %w", relPath, err)
		}
		dst, err := out2.CreateFileHandle("/" + relPath)
		if err != nil {
			return xerrors.Errorf("create entry %s: %w", relPath, err)
		}
		dst.CopyTimesFrom(f)
		if _, err := dst.Write(data); err != nil {
			return xerrors.Errorf("write %s: %w", relPath, err)
		}
		return dst.Flush()
	})
}
