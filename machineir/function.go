package machineir

import "berberis/berrors"

// Edge carries the reload/spill instructions the register allocator
// inserts between two basic blocks — a critical edge that needs its own
// copies cannot simply append them to either endpoint's instruction
// list, so they live here instead. Edge holds only ids for its
// endpoints; ownership of the Edge itself is the Function's arena, not
// either BasicBlock.
type Edge struct {
	id       int
	srcID    int
	dstID    int
	InsnList []*Instruction
}

func (e *Edge) ID() int     { return e.id }
func (e *Edge) SrcID() int  { return e.srcID }
func (e *Edge) DstID() int  { return e.dstID }

// BasicBlock owns a straight-line instruction list plus the incoming and
// outgoing edges connecting it to the rest of the function's control
// flow graph, and the live-in/live-out register sets a liveness pass
// fills in.
type BasicBlock struct {
	id       int
	InsnList []*Instruction
	InEdges  []*Edge
	OutEdges []*Edge
	LiveIn   []Reg
	LiveOut  []Reg
}

func (b *BasicBlock) ID() int { return b.id }

func (b *BasicBlock) AddInstruction(in *Instruction) {
	b.InsnList = append(b.InsnList, in)
}

// Function owns every BasicBlock and Edge created for it through an
// arena-style allocation API: nothing is freed individually, the whole
// function's IR is discarded together once codegen for it is done.
type Function struct {
	Name string

	blocks     []*BasicBlock
	edges      []*Edge
	nextBlock  int
	nextEdge   int
}

func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// NewBasicBlock allocates and appends a new block to the function's
// arena, returning it for the caller to populate.
func (f *Function) NewBasicBlock() *BasicBlock {
	bb := &BasicBlock{id: f.nextBlock}
	f.nextBlock++
	f.blocks = append(f.blocks, bb)
	return bb
}

// NewEdge allocates an edge between src and dst and links it into both
// blocks' edge lists.
func (f *Function) NewEdge(src, dst *BasicBlock) *Edge {
	e := &Edge{id: f.nextEdge, srcID: src.id, dstID: dst.id}
	f.nextEdge++
	f.edges = append(f.edges, e)
	src.OutEdges = append(src.OutEdges, e)
	dst.InEdges = append(dst.InEdges, e)
	return e
}

func (f *Function) BasicBlocks() []*BasicBlock { return f.blocks }
func (f *Function) Edges() []*Edge             { return f.edges }

// BlockByID looks up a block by its id, fatal if out of range — the id
// space is dense and assigned solely by NewBasicBlock, so an invalid id
// here is a caller bug, not recoverable input.
func (f *Function) BlockByID(id int) *BasicBlock {
	berrors.CheckFatal(id >= 0 && id < len(f.blocks), "machineir: block id %d out of range", id)
	return f.blocks[id]
}

// CheckInvariants validates the debug-build structural invariants:
// every branch pseudo's TargetBlocks entries name blocks that exist and
// every edge's endpoints are consistent with the blocks that reference
// it (block-reference well-formedness); every block with an outgoing
// edge ends in a terminator instruction (terminator existence); every
// virtual-register use inside a BasicBlock's own instruction list is
// dominated by that register's single defining instruction (SSA
// dominance — Edge.InsnList is excluded, since those are post-register-
// allocation spill/reload code that no longer obeys SSA, per Edge's own
// doc comment); and every live-in register of a block is present in
// every predecessor's live-out set, once both sides have been populated
// by a liveness pass (live-in/live-out consistency). It is meant to run
// under a debug build after IR construction and after each major pass,
// not in the hot codegen path.
func (f *Function) CheckInvariants() error {
	if err := f.checkBlockReferences(); err != nil {
		return err
	}
	if err := f.checkTerminators(); err != nil {
		return err
	}
	if err := f.checkSSADominance(); err != nil {
		return err
	}
	if err := f.checkLiveSetConsistency(); err != nil {
		return err
	}
	return nil
}

func (f *Function) checkBlockReferences() error {
	for _, bb := range f.blocks {
		for _, in := range bb.InsnList {
			for _, tb := range in.TargetBlocks {
				if tb < 0 || tb >= len(f.blocks) {
					return berrors.WrapLoader("machineir.invariant",
						fatalBlockRef(f.Name, bb.id, tb))
				}
			}
		}
		for _, e := range bb.OutEdges {
			if e.srcID != bb.id {
				return berrors.WrapLoader("machineir.invariant",
					fatalBlockRef(f.Name, bb.id, e.dstID))
			}
		}
	}
	return nil
}

// checkTerminators requires that any block with at least one outgoing
// edge ends its instruction list in a terminator op; an edge with no
// instruction to justify it, or a terminator instruction with no edge
// to match, is a malformed control-flow graph. A block with no
// outgoing edges (a function exit) needs no terminator.
func (f *Function) checkTerminators() error {
	for _, bb := range f.blocks {
		if len(bb.OutEdges) == 0 {
			continue
		}
		if len(bb.InsnList) == 0 {
			return berrors.WrapLoader("machineir.invariant", fatalMissingTerminator(f.Name, bb.id))
		}
		last := bb.InsnList[len(bb.InsnList)-1]
		if !last.Op.IsTerminator() {
			return berrors.WrapLoader("machineir.invariant", fatalMissingTerminator(f.Name, bb.id))
		}
	}
	return nil
}

// checkSSADominance verifies that every virtual register used by a
// BasicBlock instruction (not an Edge instruction — see CheckInvariants'
// doc comment) has exactly one defining instruction in the function,
// and that the defining block dominates the using block (or, for a
// same-block def, precedes the use).
func (f *Function) checkSSADominance() error {
	type defSite struct {
		blockID int
		pos     int
	}
	defs := make(map[int][]defSite)
	for _, bb := range f.blocks {
		for pos, in := range bb.InsnList {
			for _, op := range in.Defs() {
				if op.Reg.IsVReg() {
					idx := op.Reg.Index()
					defs[idx] = append(defs[idx], defSite{blockID: bb.id, pos: pos})
				}
			}
		}
	}
	for idx, sites := range defs {
		if len(sites) > 1 {
			return berrors.WrapLoader("machineir.invariant", fatalMultipleDefs(f.Name, idx))
		}
	}

	dom := f.dominatorSets()

	for _, bb := range f.blocks {
		for pos, in := range bb.InsnList {
			for _, op := range in.Uses() {
				if !op.Reg.IsVReg() {
					continue
				}
				sites := defs[op.Reg.Index()]
				if len(sites) == 0 {
					continue // no def recorded: treated as an ABI-supplied input
				}
				site := sites[0]
				if site.blockID == bb.id {
					if site.pos > pos {
						return berrors.WrapLoader("machineir.invariant",
							fatalUseNotDominated(f.Name, bb.id, op.Reg.Index()))
					}
					continue
				}
				if !dom[bb.id][site.blockID] {
					return berrors.WrapLoader("machineir.invariant",
						fatalUseNotDominated(f.Name, bb.id, op.Reg.Index()))
				}
			}
		}
	}
	return nil
}

// dominatorSets computes, for every block id, the set of block ids that
// dominate it (always including itself), via the standard iterative
// dataflow fixpoint: Dom[entry] = {entry}, Dom[b] = {b} union the
// intersection of Dom[p] over every predecessor p, repeated until
// nothing changes. Block 0 is taken as the function's entry.
func (f *Function) dominatorSets() map[int]map[int]bool {
	all := make(map[int]bool, len(f.blocks))
	for _, bb := range f.blocks {
		all[bb.id] = true
	}

	dom := make(map[int]map[int]bool, len(f.blocks))
	for _, bb := range f.blocks {
		if bb.id == 0 {
			dom[bb.id] = map[int]bool{bb.id: true}
		} else {
			dom[bb.id] = copySet(all)
		}
	}

	changed := true
	for changed {
		changed = false
		for _, bb := range f.blocks {
			if bb.id == 0 {
				continue
			}
			if len(bb.InEdges) == 0 {
				if len(dom[bb.id]) != 1 || !dom[bb.id][bb.id] {
					dom[bb.id] = map[int]bool{bb.id: true}
					changed = true
				}
				continue
			}
			var next map[int]bool
			for _, e := range bb.InEdges {
				if next == nil {
					next = copySet(dom[e.srcID])
				} else {
					next = intersect(next, dom[e.srcID])
				}
			}
			next[bb.id] = true
			if !setsEqual(next, dom[bb.id]) {
				dom[bb.id] = next
				changed = true
			}
		}
	}
	return dom
}

func copySet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func intersect(a, b map[int]bool) map[int]bool {
	out := make(map[int]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func setsEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// checkLiveSetConsistency requires that every register live into a
// block is also live out of each of its predecessors, the standard
// backward-liveness sanity check (LiveOut(src) is the union of
// LiveIn(succ) over src's successors). It only compares an edge's
// endpoints once both sides have a non-nil live set recorded: a block
// whose liveness has not yet been computed by a liveness pass carries a
// nil LiveIn/LiveOut, and is not yet expected to agree with anything.
func (f *Function) checkLiveSetConsistency() error {
	for _, bb := range f.blocks {
		for _, e := range bb.OutEdges {
			dst := f.BlockByID(e.dstID)
			if bb.LiveOut == nil || dst.LiveIn == nil {
				continue
			}
			for _, r := range dst.LiveIn {
				if !regInSet(bb.LiveOut, r) {
					return berrors.WrapLoader("machineir.invariant",
						fatalLiveSetMismatch(f.Name, bb.id, dst.id))
				}
			}
		}
	}
	return nil
}

func regInSet(set []Reg, r Reg) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}

type invariantError struct {
	funcName string
	blockID  int
	targetID int
}

func (e *invariantError) Error() string {
	return "machineir: function " + e.funcName + " block references invalid target"
}

func fatalBlockRef(funcName string, blockID, targetID int) error {
	return &invariantError{funcName: funcName, blockID: blockID, targetID: targetID}
}

type missingTerminatorError struct {
	funcName string
	blockID  int
}

func (e *missingTerminatorError) Error() string {
	return "machineir: function " + e.funcName + " block has outgoing edges but no terminator instruction"
}

func fatalMissingTerminator(funcName string, blockID int) error {
	return &missingTerminatorError{funcName: funcName, blockID: blockID}
}

type multipleDefsError struct {
	funcName string
	vregIdx  int
}

func (e *multipleDefsError) Error() string {
	return "machineir: function " + e.funcName + " virtual register has more than one defining instruction"
}

func fatalMultipleDefs(funcName string, vregIdx int) error {
	return &multipleDefsError{funcName: funcName, vregIdx: vregIdx}
}

type useNotDominatedError struct {
	funcName string
	blockID  int
	vregIdx  int
}

func (e *useNotDominatedError) Error() string {
	return "machineir: function " + e.funcName + " virtual register use is not dominated by its defining instruction"
}

func fatalUseNotDominated(funcName string, blockID, vregIdx int) error {
	return &useNotDominatedError{funcName: funcName, blockID: blockID, vregIdx: vregIdx}
}

type liveSetMismatchError struct {
	funcName    string
	srcBlockID  int
	dstBlockID  int
}

func (e *liveSetMismatchError) Error() string {
	return "machineir: function " + e.funcName + " live-in set disagrees with a predecessor's live-out set"
}

func fatalLiveSetMismatch(funcName string, srcBlockID, dstBlockID int) error {
	return &liveSetMismatchError{funcName: funcName, srcBlockID: srcBlockID, dstBlockID: dstBlockID}
}
