package riscv

import "berberis/berrors"

// Condition names a branch comparison kind. Values and aliases mirror
// original_source/assembler/include/berberis/assembler/riscv.h's
// Condition enum: kAlways/kNever are not real RISC-V branch
// comparisons, they're the assembler's own tie-break for a branch
// whose condition folded to a compile-time constant.
type Condition int

const (
	ConditionInvalid Condition = -1

	ConditionEqual        Condition = 0
	ConditionNotEqual     Condition = 1
	ConditionLess         Condition = 4
	ConditionGreaterEqual Condition = 5
	ConditionBelow        Condition = 6
	ConditionAboveEqual   Condition = 7
	ConditionAlways       Condition = 8
	ConditionNever        Condition = 9

	ConditionCarry    = ConditionBelow
	ConditionNotCarry = ConditionAboveEqual
	ConditionZero     = ConditionEqual
	ConditionNotZero  = ConditionNotEqual
)

// funct3 returns the 3-bit comparison field for a real conditional
// branch. kAlways and kNever are not encodable as a funct3 — the
// assembler must lower them to an unconditional jump or nothing,
// never call this.
func (c Condition) funct3() uint32 {
	berrors.CheckFatal(c >= 0 && c <= 7,
		"riscv: condition %d has no funct3 encoding", c)
	return uint32(c)
}

// Funct3 exposes the 3-bit condition-code field, range-checked since
// it is scattered directly into the instruction word with no further
// masking by the caller.
func (c Condition) Funct3() uint32 { return c.funct3() }

func (c Condition) IsAlways() bool { return c == ConditionAlways }
func (c Condition) IsNever() bool  { return c == ConditionNever }
