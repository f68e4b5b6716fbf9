package pk2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPathRejectsMissingLeadingSlash(t *testing.T) {
	r := require.New(t)
	_, err := splitPath("a/b")
	r.True(IsInvalidPath(err))
}

func TestSplitPathRejectsEmptyComponent(t *testing.T) {
	r := require.New(t)
	_, err := splitPath("/a//b")
	r.True(IsInvalidPath(err))
}

func TestSplitPathAcceptsBackslash(t *testing.T) {
	r := require.New(t)
	components, err := splitPath(`\a\b`)
	r.NoError(err)
	r.Equal([]string{"a", "b"}, components)
}

func TestSplitPathMixedSeparators(t *testing.T) {
	r := require.New(t)
	components, err := splitPath(`/a\b/c`)
	r.NoError(err)
	r.Equal([]string{"a", "b", "c"}, components)
}
