package pk2

import "strings"

// splitPath splits an archive path on '/' or '\' into non-empty components.
// A leading separator is required and stripped; "a//b" and a bare "/" are
// both InvalidPath.
func splitPath(path string) ([]string, error) {
	if len(path) == 0 || (path[0] != '/' && path[0] != '\\') {
		return nil, newErr(KindInvalidPath, "path %q: must start with / or \\", path)
	}
	raw := strings.Split(strings.ReplaceAll(path[1:], `\`, "/"), "/")
	if len(raw) == 1 && raw[0] == "" {
		return nil, newErr(KindInvalidPath, "path %q: empty path", path)
	}
	for _, c := range raw {
		if c == "" {
			return nil, newErr(KindInvalidPath, "path %q: empty component", path)
		}
	}
	return raw, nil
}

// resolveToChain walks every component as a directory, starting from start.
// Every component must resolve to an existing directory; the first
// non-directory or missing component fails.
func resolveToChain(ci *ChainIndex, start ChainOffset, components []string) (ChainOffset, error) {
	current := start
	for _, name := range components {
		bc, ok := ci.get(current)
		if !ok {
			return 0, newErr(KindCorruptedFile, "resolve: chain %v missing from index", current)
		}
		_, _, e, found := bc.findByName(name)
		if !found {
			return 0, newErr(KindNotFound, "resolve: %q not found", name)
		}
		children, isDir := e.childrenOffset()
		if !isDir {
			return 0, newErr(KindExpectedDirectory, "resolve: %q is not a directory", name)
		}
		current = children
	}
	return current, nil
}

// resolveToParent splits the last component off path and resolves the
// remaining prefix (relative to start) to a chain, returning it alongside
// the final component's name.
func resolveToParent(ci *ChainIndex, start ChainOffset, path string) (parent ChainOffset, last string, err error) {
	components, err := splitPath(path)
	if err != nil {
		return 0, "", err
	}
	parent, err = resolveToChain(ci, start, components[:len(components)-1])
	if err != nil {
		return 0, "", err
	}
	return parent, components[len(components)-1], nil
}

// resolveToEntry resolves path to its parent chain and the entry itself,
// doing a case-insensitive scan of the parent for the final component.
func resolveToEntry(ci *ChainIndex, start ChainOffset, path string) (parent ChainOffset, blockIdx, entryIdx int, e entry, err error) {
	parent, last, err := resolveToParent(ci, start, path)
	if err != nil {
		return 0, 0, 0, entry{}, err
	}
	bc, ok := ci.get(parent)
	if !ok {
		return 0, 0, 0, entry{}, newErr(KindCorruptedFile, "resolve: chain %v missing from index", parent)
	}
	bi, ei, cand, found := bc.findByName(last)
	if !found {
		return 0, 0, 0, entry{}, newErr(KindNotFound, "resolve: %q not found", last)
	}
	return parent, bi, ei, cand, nil
}

// validateUntil walks path component by component from start for as long as
// each prefix already exists as a directory, stopping at the first missing
// or non-directory component, or once the full path exists. It returns the
// chain reached, the components still to be created, and whether the whole
// path already fully exists (rest empty and the last component itself also
// exists).
func validateUntil(ci *ChainIndex, start ChainOffset, path string) (reached ChainOffset, rest []string, fullyExists bool, err error) {
	components, err := splitPath(path)
	if err != nil {
		return 0, nil, false, err
	}
	current := start
	for i, name := range components {
		bc, ok := ci.get(current)
		if !ok {
			return 0, nil, false, newErr(KindCorruptedFile, "resolve: chain %v missing from index", current)
		}
		_, _, e, found := bc.findByName(name)
		if !found {
			return current, components[i:], false, nil
		}
		if i == len(components)-1 {
			return current, nil, true, nil
		}
		children, isDir := e.childrenOffset()
		if !isDir {
			return 0, nil, false, newErr(KindExpectedDirectory, "resolve: %q is not a directory", name)
		}
		current = children
	}
	return current, nil, true, nil
}
