package pk2

// ChainIndex is the in-memory map from chain offset to its fully parsed
// block chain, built once at open time and then kept up to date as
// mutations allocate new chains and blocks.
type ChainIndex struct {
	chains map[ChainOffset]*blockChain
}

func newChainIndex() *ChainIndex {
	return &ChainIndex{chains: make(map[ChainOffset]*blockChain)}
}

func (ci *ChainIndex) get(offset ChainOffset) (*blockChain, bool) {
	bc, ok := ci.chains[offset]
	return bc, ok
}

func (ci *ChainIndex) insert(bc *blockChain) {
	ci.chains[bc.chainOffset()] = bc
}

// readRequest is what the parser wants the driver loop to fetch next: the
// decrypted bytes of exactly one block, living at offset.
type readRequest struct {
	offset BlockOffset
}

// chainIndexParser is a state machine that assembles a ChainIndex from a
// sequence of externally-supplied blocks. It performs no I/O itself: a
// driver loop asks it wantsReadAt, fetches+decrypts those bytes by whatever
// means it likes (synchronous Seek+Read in runChainIndexParser here, but
// nothing in this type assumes that), and feeds them back via progress. This
// keeps the parsing logic testable without a real stream and leaves room for an async driver
// later.
//
// The worklist can interleave reads belonging to different chains: a
// multi-block chain's continuation request and a freshly discovered sibling
// chain's first request both get pushed to the back of the same FIFO, so the
// driver may well process "chain A block 2" only after "chain B block 1" has
// been dequeued in between. Every pendingRead therefore carries its own
// chain identity, and blocks accumulate per chain in pending (keyed by that
// identity) rather than in a single "currently building" slot — mirroring
// the reference parser, which keys its in-progress chains map the same way
// so block arrival order never matters.
type chainIndexParser struct {
	index    *ChainIndex
	worklist []pendingRead
	visited  map[ChainOffset]bool
	// pending accumulates the blocks seen so far for each chain that has at
	// least one block read but not yet fully assembled.
	pending map[ChainOffset]*pendingChain
	done    bool
}

// pendingChain is one chain's accumulated blocks while still being read.
type pendingChain struct {
	offsets []BlockOffset
	blocks  []block
}

type pendingRead struct {
	chain ChainOffset
	block BlockOffset
}

func newChainIndexParser(root ChainOffset) *chainIndexParser {
	return &chainIndexParser{
		index:    newChainIndex(),
		worklist: []pendingRead{{chain: root, block: root.AsBlockOffset()}},
		visited:  map[ChainOffset]bool{root: true},
		pending:  make(map[ChainOffset]*pendingChain),
	}
}

// wantsReadAt reports the next block the driver must read, or ok=false if
// parsing is complete.
func (p *chainIndexParser) wantsReadAt() (readRequest, bool) {
	if p.done || len(p.worklist) == 0 {
		return readRequest{}, false
	}
	return readRequest{offset: p.worklist[0].block}, true
}

// progress feeds the block requested by the most recent wantsReadAt back
// into the parser, already decrypted and parsed by the driver loop.
func (p *chainIndexParser) progress(b block) error {
	if p.done || len(p.worklist) == 0 {
		return newErr(KindCorruptedFile, "chain index: progress called with nothing pending")
	}
	req := p.worklist[0]
	p.worklist = p.worklist[1:]

	pc, ok := p.pending[req.chain]
	if !ok {
		pc = &pendingChain{}
		p.pending[req.chain] = pc
	}
	pc.blocks = append(pc.blocks, b)
	pc.offsets = append(pc.offsets, req.block)

	if next := b.nextBlockOffset(); !next.IsZero() {
		p.worklist = append(p.worklist, pendingRead{chain: req.chain, block: next})
	} else {
		p.flushChain(req.chain)
	}

	for _, e := range b {
		children, ok := e.childrenOffset()
		if !ok {
			continue
		}
		if children == req.chain || children.IsZero() {
			continue // "." and zero/self links never need a fresh read
		}
		if p.visited[children] {
			continue
		}
		p.visited[children] = true
		p.worklist = append(p.worklist, pendingRead{chain: children, block: children.AsBlockOffset()})
	}

	if len(p.worklist) == 0 {
		p.done = true
	}
	return nil
}

// flushChain commits chain's fully-assembled run of blocks into the index
// and drops its now-finished pending entry.
func (p *chainIndexParser) flushChain(chain ChainOffset) {
	pc, ok := p.pending[chain]
	if !ok || len(pc.blocks) == 0 {
		return
	}
	bc := &blockChain{offsets: pc.offsets, blocks: pc.blocks}
	p.index.insert(bc)
	delete(p.pending, chain)
}

// abandon stops the parser early, discarding any outstanding worklist. Every
// chain with at least one block read so far is flushed (possibly
// incomplete) so the index built so far is still returned by finish.
func (p *chainIndexParser) abandon() {
	for chain := range p.pending {
		p.flushChain(chain)
	}
	p.worklist = nil
	p.done = true
}

func (p *chainIndexParser) finish() (*ChainIndex, bool) {
	return p.index, p.done
}
