package pk2

// deleteFileLocked resolves path to a file entry and clears it in place.
// Callers must already hold a.locker.
func (a *Archive) deleteFileLocked(path string) error {
	parent, blockIdx, entryIdx, e, err := resolveToEntry(a.index, rootChainOffset, path)
	if err != nil {
		return err
	}
	if !e.isFile() {
		return newErr(KindExpectedFile, "delete %q: not a file", path)
	}

	bc, ok := a.index.get(parent)
	if !ok {
		return newErr(KindCorruptedFile, "delete: chain %v missing from index", parent)
	}
	cleared := bc.entry(blockIdx, entryIdx)
	cleared.clear()
	bc.setEntry(blockIdx, entryIdx, cleared)
	return a.rewriteEntry(bc, blockIdx, entryIdx)
}
