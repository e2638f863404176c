package machineir

import (
	"strings"
	"testing"
)

func TestRegDebugStringKinds(t *testing.T) {
	if got := HardReg(3).DebugString(nil); got != "hw3" {
		t.Fatalf("HardReg debug = %q, want hw3", got)
	}
	if got := VReg(5).DebugString(nil); got != "v5" {
		t.Fatalf("VReg debug = %q, want v5", got)
	}
	if got := SpilledReg(2).DebugString(nil); got != "s2" {
		t.Fatalf("SpilledReg debug = %q, want s2", got)
	}
	named := func(n int) string {
		if n == 3 {
			return "eax"
		}
		return "?"
	}
	if got := HardReg(3).DebugString(named); got != "eax" {
		t.Fatalf("HardReg named debug = %q, want eax", got)
	}
}

func TestRegPredicatesAndIndex(t *testing.T) {
	r := VReg(7)
	if !r.IsVReg() || r.IsHardReg() || r.IsSpilledReg() {
		t.Fatalf("VReg predicates wrong: %+v", r)
	}
	if r.Index() != 7 {
		t.Fatalf("Index() = %d, want 7", r.Index())
	}
}

func TestInstructionUsesAndDefs(t *testing.T) {
	in := NewInstruction(OpPseudoCopy,
		Operand{Reg: VReg(0), Use: OperandUseDef},
		Operand{Reg: VReg(1), Use: OperandUseUse},
		Operand{Reg: VReg(2), Use: OperandUseUseDef},
	)
	uses := in.Uses()
	if len(uses) != 2 || uses[0].Reg != VReg(1) || uses[1].Reg != VReg(2) {
		t.Fatalf("Uses() = %+v, want [v1(use), v2(use-def)]", uses)
	}
	defs := in.Defs()
	if len(defs) != 2 || defs[0].Reg != VReg(0) || defs[1].Reg != VReg(2) {
		t.Fatalf("Defs() = %+v, want [v0(def), v2(use-def)]", defs)
	}
}

func TestArchOpcodeIsNotPseudoAndDistinctPerBackend(t *testing.T) {
	x64Add := ArchOpcode(1, 10)
	armAdd := ArchOpcode(2, 10)
	if x64Add.IsPseudo() || armAdd.IsPseudo() {
		t.Fatalf("arch opcodes must not report IsPseudo")
	}
	if x64Add == armAdd {
		t.Fatalf("opcodes from different backendTag must differ: %d == %d", x64Add, armAdd)
	}
	if !OpPseudoBranch.IsPseudo() {
		t.Fatalf("OpPseudoBranch must report IsPseudo")
	}
}

// buildDiamond builds three blocks: BB0 ends in a conditional branch
// naming BB1 (then) and BB2 (else), and BB1 branches to BB2. Only one
// Edge object is created, BB1 -> BB2, carrying one copy from v4 into
// spill slot s0; BB2 lists s0 as live-in.
func buildDiamond() *Function {
	f := NewFunction("diamond")
	bb0 := f.NewBasicBlock()
	bb1 := f.NewBasicBlock()
	bb2 := f.NewBasicBlock()

	bb0.AddInstruction(&Instruction{
		Op:           OpPseudoCondBranch,
		Imm:          0,
		TargetBlocks: []int{bb1.ID(), bb2.ID()},
	})

	e := f.NewEdge(bb1, bb2)
	e.InsnList = append(e.InsnList, NewInstruction(OpPseudoCopy,
		Operand{Reg: SpilledReg(0), Use: OperandUseDef},
		Operand{Reg: VReg(4), Use: OperandUseUse},
	))
	bb1.AddInstruction(NewInstruction(OpPseudoBranch))
	bb1.InsnList[0].TargetBlocks = []int{bb2.ID()}

	bb2.LiveIn = []Reg{SpilledReg(0)}
	return f
}

func TestFunctionArenaIdsAndLookup(t *testing.T) {
	f := buildDiamond()
	if len(f.BasicBlocks()) != 3 {
		t.Fatalf("BasicBlocks() len = %d, want 3", len(f.BasicBlocks()))
	}
	for i, bb := range f.BasicBlocks() {
		if bb.ID() != i {
			t.Fatalf("block %d has id %d, want dense ids", i, bb.ID())
		}
	}
	if len(f.Edges()) != 1 {
		t.Fatalf("Edges() len = %d, want 1", len(f.Edges()))
	}
	e := f.Edges()[0]
	if e.SrcID() != 1 || e.DstID() != 2 {
		t.Fatalf("edge endpoints = (%d,%d), want (1,2)", e.SrcID(), e.DstID())
	}
	if f.BlockByID(2) != f.BasicBlocks()[2] {
		t.Fatalf("BlockByID(2) did not return bb2")
	}
}

func TestCheckInvariantsPassesOnValidGraph(t *testing.T) {
	f := buildDiamond()
	if err := f.CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() = %v, want nil", err)
	}
}

func TestCheckInvariantsCatchesDanglingBranchTarget(t *testing.T) {
	f := NewFunction("broken")
	bb0 := f.NewBasicBlock()
	bb0.AddInstruction(&Instruction{Op: OpPseudoBranch, TargetBlocks: []int{99}})
	if err := f.CheckInvariants(); err == nil {
		t.Fatalf("CheckInvariants() = nil, want error for out-of-range target block")
	}
}

func TestCheckInvariantsCatchesMissingTerminator(t *testing.T) {
	f := NewFunction("no_terminator")
	bb0 := f.NewBasicBlock()
	bb1 := f.NewBasicBlock()
	f.NewEdge(bb0, bb1)
	bb0.AddInstruction(NewInstruction(OpPseudoCopy,
		Operand{Reg: VReg(0), Use: OperandUseDef},
		Operand{Reg: VReg(1), Use: OperandUseUse},
	))
	if err := f.CheckInvariants(); err == nil {
		t.Fatalf("CheckInvariants() = nil, want error for block with an edge but no terminator")
	}
}

func TestCheckInvariantsCatchesUseNotDominatedBySiblingBranch(t *testing.T) {
	f := NewFunction("not_dominated")
	bb0 := f.NewBasicBlock()
	bb1 := f.NewBasicBlock()
	bb2 := f.NewBasicBlock()
	f.NewEdge(bb0, bb1)
	f.NewEdge(bb0, bb2)

	bb0.AddInstruction(&Instruction{Op: OpPseudoCondBranch, TargetBlocks: []int{bb1.ID(), bb2.ID()}})
	bb1.AddInstruction(NewInstruction(OpPseudoCopy,
		Operand{Reg: VReg(9), Use: OperandUseDef},
		Operand{Reg: VReg(0), Use: OperandUseUse},
	))
	// bb2 is a sibling of bb1, not dominated by it, yet uses the value
	// bb1 defines.
	bb2.AddInstruction(NewInstruction(OpPseudoCopy,
		Operand{Reg: VReg(1), Use: OperandUseDef},
		Operand{Reg: VReg(9), Use: OperandUseUse},
	))

	if err := f.CheckInvariants(); err == nil {
		t.Fatalf("CheckInvariants() = nil, want error for use not dominated by its def")
	}
}

func TestCheckInvariantsCatchesLiveSetMismatch(t *testing.T) {
	f := NewFunction("live_mismatch")
	bb0 := f.NewBasicBlock()
	bb1 := f.NewBasicBlock()
	f.NewEdge(bb0, bb1)
	bb0.AddInstruction(&Instruction{Op: OpPseudoBranch, TargetBlocks: []int{bb1.ID()}})

	bb0.LiveOut = []Reg{}
	bb1.LiveIn = []Reg{SpilledReg(3)}

	if err := f.CheckInvariants(); err == nil {
		t.Fatalf("CheckInvariants() = nil, want error for live-in not present in predecessor's live-out")
	}
}

func TestDebugStringIncludesLiveSetsAndEdgeInsns(t *testing.T) {
	f := buildDiamond()
	s := f.DebugString(nil, nil)
	if !strings.Contains(s, "PSEUDO_COND_BRANCH 0, 1, 2") {
		t.Fatalf("DebugString missing cond-branch line:\n%s", s)
	}
	if !strings.Contains(s, "MachineEdge 1 -> 2") {
		t.Fatalf("DebugString missing edge header:\n%s", s)
	}
	if !strings.Contains(s, "PSEUDO_COPY(size=0) s0, v4") {
		t.Fatalf("DebugString missing edge copy:\n%s", s)
	}
	if !strings.Contains(s, "live_in=[s0]") {
		t.Fatalf("DebugString missing live_in for bb2:\n%s", s)
	}
}

func TestDebugStringForDotShapesGraph(t *testing.T) {
	f := buildDiamond()
	s := f.DebugStringForDot(nil, nil)
	if !strings.HasPrefix(s, "digraph MachineIR {\n") {
		t.Fatalf("DOT output missing header:\n%s", s)
	}
	if !strings.Contains(s, "BB1->BB2;") {
		t.Fatalf("DOT output missing edge BB1->BB2:\n%s", s)
	}
	if !strings.Contains(s, "BB0 [shape=box,label=\"BB0\\l") {
		t.Fatalf("DOT output missing BB0 node label:\n%s", s)
	}
}

func TestInstructionPrinterDelegatesForArchOpcodes(t *testing.T) {
	custom := ArchOpcode(1, 42)
	called := false
	printer := func(in *Instruction, hardName HardRegName) string {
		called = true
		return "CUSTOM"
	}
	f := NewFunction("delegate")
	bb := f.NewBasicBlock()
	bb.AddInstruction(NewInstruction(custom))
	s := f.DebugString(nil, printer)
	if !called {
		t.Fatalf("archPrint was not invoked for a non-pseudo opcode")
	}
	if !strings.Contains(s, "CUSTOM") {
		t.Fatalf("DebugString did not use archPrint output:\n%s", s)
	}
}
