package pk2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBlockChainPushAndLinkStructural(t *testing.T) {
	r := require.New(t)

	b := emptyBlock(0)
	bc := newBlockChain(BlockOffset(256), b)

	tailIdx, _ := bc.pushAndLink(BlockOffset(3072))
	r.Equal(0, tailIdx)
	r.Equal(2, bc.numBlocks())
	r.Equal(BlockOffset(3072), bc.blocks[0].nextBlockOffset())

	want := emptyBlock(BlockOffset(3072))
	if diff := cmp.Diff(want, bc.blocks[0], cmp.AllowUnexported(entry{}, filetime{})); diff != "" {
		t.Fatalf("tail block after pushAndLink (-want +got):\n%s", diff)
	}

	bc.setEntry(1, 0, newFileEntry("leaf.bin", StreamOffset(9000), 4, 0))
	r.Equal(true, bc.entry(1, 0).isFile())

	blockIdx, entryIdx, e, found := bc.findByName("LEAF.BIN")
	r.True(found)
	r.Equal(1, blockIdx)
	r.Equal(0, entryIdx)
	r.True(e.isFile())

	if diff := cmp.Diff(emptyBlock(0), bc.blocks[1], cmp.AllowUnexported(entry{}, filetime{})); diff == "" {
		t.Fatalf("expected block 1 to differ from an empty block after setEntry")
	}
}
