package machineir

import (
	"fmt"
	"strings"
)

// InstructionPrinter formats one instruction's mnemonic and operands for
// the debug dump. Each hostasm backend supplies one so the pseudo-op
// printer below can delegate to it for any non-pseudo opcode.
type InstructionPrinter func(in *Instruction, hardName HardRegName) string

func regListString(regs []Reg, hardName HardRegName) string {
	parts := make([]string, len(regs))
	for i, r := range regs {
		parts[i] = r.DebugString(hardName)
	}
	return strings.Join(parts, ", ")
}

func operandListString(ops []Operand, hardName HardRegName) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.Reg.DebugString(hardName)
	}
	return strings.Join(parts, ", ")
}

func instructionDebugString(in *Instruction, hardName HardRegName, archPrint InstructionPrinter) string {
	switch in.Op {
	case OpPseudoBranch:
		return fmt.Sprintf("PSEUDO_BRANCH %d", in.TargetBlocks[0])
	case OpPseudoCondBranch:
		return fmt.Sprintf("PSEUDO_COND_BRANCH %d, %d, %d, (%s)",
			in.Imm, in.TargetBlocks[0], in.TargetBlocks[1], operandListString(in.Operands, hardName))
	case OpPseudoIndirectJump:
		return fmt.Sprintf("PSEUDO_JUMP_INDIRECT (%s)", operandListString(in.Operands, hardName))
	case OpPseudoCopy:
		return fmt.Sprintf("PSEUDO_COPY(size=%d) %s", in.Imm, operandListString(in.Operands, hardName))
	case OpPseudoReadFlags:
		return fmt.Sprintf("PSEUDO_READ_FLAGS (%s)", operandListString(in.Operands, hardName))
	case OpPseudoWriteFlags:
		return fmt.Sprintf("PSEUDO_WRITE_FLAGS (%s)", operandListString(in.Operands, hardName))
	case OpPseudoCallImm:
		return fmt.Sprintf("PSEUDO_CALL_IMM %#x", in.Imm)
	case OpPseudoCallImmArg:
		return fmt.Sprintf("PSEUDO_CALL_IMM_ARG (%s)", operandListString(in.Operands, hardName))
	case OpPseudoDefineAsInput:
		return fmt.Sprintf("PSEUDO_DEFINE_AS_INPUT (%s)", operandListString(in.Operands, hardName))
	case OpPseudoBranchToConstant:
		return fmt.Sprintf("PSEUDO_BRANCH_TO_CONST %#x", in.Imm)
	case OpPseudoSyscall:
		return "PSEUDO_SYSCALL"
	default:
		if archPrint != nil {
			return archPrint(in, hardName)
		}
		return fmt.Sprintf("OP(%d) (%s)", in.Op, operandListString(in.Operands, hardName))
	}
}

func insnListDebugString(indent string, list []*Instruction, hardName HardRegName, archPrint InstructionPrinter) string {
	var b strings.Builder
	for _, in := range list {
		b.WriteString(indent)
		b.WriteString(instructionDebugString(in, hardName, archPrint))
		b.WriteString("\n")
	}
	return b.String()
}

// DebugString renders the block and its incoming edges' spill/reload
// lists, same shape as the source's MachineBasicBlock::GetDebugString.
func (b *BasicBlock) DebugString(hardName HardRegName, archPrint InstructionPrinter) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%2d MachineBasicBlock live_in=[%s] live_out=[%s]\n",
		b.id, regListString(b.LiveIn, hardName), regListString(b.LiveOut, hardName))

	for _, e := range b.InEdges {
		fmt.Fprintf(&out, "    MachineEdge %d -> %d [\n", e.srcID, e.dstID)
		out.WriteString(insnListDebugString("      ", e.InsnList, hardName, archPrint))
		out.WriteString("    ]\n")
	}

	out.WriteString(insnListDebugString("    ", b.InsnList, hardName, archPrint))
	return out.String()
}

// DebugString renders every block in function order, the textual dump
// used by golden-file IR tests.
func (f *Function) DebugString(hardName HardRegName, archPrint InstructionPrinter) string {
	var out strings.Builder
	for _, bb := range f.blocks {
		out.WriteString(bb.DebugString(hardName, archPrint))
	}
	return out.String()
}

// DebugStringForDot renders the function's control flow graph as
// Graphviz dot source, for visual debugging of a translation.
func (f *Function) DebugStringForDot(hardName HardRegName, archPrint InstructionPrinter) string {
	var out strings.Builder
	out.WriteString("digraph MachineIR {\n")
	for _, bb := range f.blocks {
		for _, e := range bb.InEdges {
			fmt.Fprintf(&out, "BB%d->BB%d;\n", e.srcID, bb.id)
		}
		fmt.Fprintf(&out, "BB%d [shape=box,label=\"BB%d\\l", bb.id, bb.id)
		for _, in := range bb.InsnList {
			out.WriteString(instructionDebugString(in, hardName, archPrint))
			out.WriteString("\\l")
		}
		out.WriteString("\"];\n")
	}
	out.WriteString("}\n")
	return out.String()
}
