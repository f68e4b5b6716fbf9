package pk2

import "path"

// Directory is a handle to one archive directory.
type Directory struct {
	archive *Archive
	chain   ChainOffset
}

// DirEntry is one directory/file entry surfaced by Directory.Entries,
// deliberately never exposing "." or "..".
type DirEntry struct {
	Name  string
	IsDir bool

	archive  *Archive
	chain    ChainOffset // the chain this entry was found in
	blockIdx int
	entryIdx int
}

// AsFile opens this entry as a file handle. It fails with ExpectedFile if
// the entry is a directory.
func (de DirEntry) AsFile() (*File, error) {
	if de.IsDir {
		return nil, newErr(KindExpectedFile, "%q is a directory", de.Name)
	}
	de.archive.locker.Lock()
	defer de.archive.locker.Unlock()

	bc, ok := de.archive.index.get(de.chain)
	if !ok {
		return nil, newErr(KindCorruptedFile, "chain %v missing from index", de.chain)
	}
	e := bc.entry(de.blockIdx, de.entryIdx)
	pos, size, _ := e.fileData()
	return &File{archive: de.archive, name: e.name, pos: pos, size: size, access: e.accessTime, modify: e.modifyTime}, nil
}

// AsDirectory opens this entry as a directory handle. It fails with
// ExpectedDirectory if the entry is a file.
func (de DirEntry) AsDirectory() (*Directory, error) {
	if !de.IsDir {
		return nil, newErr(KindExpectedDirectory, "%q is a file", de.Name)
	}
	de.archive.locker.Lock()
	defer de.archive.locker.Unlock()

	bc, ok := de.archive.index.get(de.chain)
	if !ok {
		return nil, newErr(KindCorruptedFile, "chain %v missing from index", de.chain)
	}
	children, _ := bc.entry(de.blockIdx, de.entryIdx).childrenOffset()
	return &Directory{archive: de.archive, chain: children}, nil
}

// Entries lists every non-empty entry in d, excluding the "." and ".."
// metadata links.
func (d *Directory) Entries() ([]DirEntry, error) {
	d.archive.locker.Lock()
	defer d.archive.locker.Unlock()
	return d.entriesLocked()
}

func (d *Directory) entriesLocked() ([]DirEntry, error) {
	bc, ok := d.archive.index.get(d.chain)
	if !ok {
		return nil, newErr(KindCorruptedFile, "chain %v missing from index", d.chain)
	}
	var out []DirEntry
	bc.forEach(func(blockIdx, entryIdx int, e entry) bool {
		if e.name == "." || e.name == ".." {
			return true
		}
		out = append(out, DirEntry{
			Name: e.name, IsDir: e.isDirectory(),
			archive: d.archive, chain: d.chain, blockIdx: blockIdx, entryIdx: entryIdx,
		})
		return true
	})
	return out, nil
}

// Files is Entries filtered to files only.
func (d *Directory) Files() ([]DirEntry, error) {
	all, err := d.Entries()
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, de := range all {
		if !de.IsDir {
			out = append(out, de)
		}
	}
	return out, nil
}

// ForEachFile walks d and every subdirectory depth-first, invoking cb with
// each file's path relative to d and an open read handle to it. Walking
// stops at the first error cb returns.
func (d *Directory) ForEachFile(cb func(relPath string, f *File) error) error {
	return d.forEachFile("", cb)
}

func (d *Directory) forEachFile(prefix string, cb func(string, *File) error) error {
	entries, err := d.Entries()
	if err != nil {
		return err
	}
	for _, de := range entries {
		rel := path.Join(prefix, de.Name)
		if de.IsDir {
			sub, err := de.AsDirectory()
			if err != nil {
				return err
			}
			if err := sub.forEachFile(rel, cb); err != nil {
				return err
			}
			continue
		}
		f, err := de.AsFile()
		if err != nil {
			return err
		}
		if err := cb(rel, f); err != nil {
			return err
		}
	}
	return nil
}
