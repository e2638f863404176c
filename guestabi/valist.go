package guestabi

import "berberis/callconv"

// VAListParams scans variadic arguments one at a time, advancing its own
// cursor as each GetParam call is made. Per spec.md §4.4, a variadic FP
// argument travels through the integer path even under LP64D — a fresh
// LP64Cursor with HardFloat=false naturally implements that rule, since
// NextFPArgLoc is simply never called here.
type VAListParams struct {
	conv   *callconv.LP64Cursor
	params *RISCV64ThreadParams
}

// NewVAListParamsFromCall continues scanning after base, the cursor
// state captured at the point the variadic function's named parameters
// were laid out (GuestParamsAndReturn's kVaStartBase in the source).
func NewVAListParamsFromCall(base *callconv.LP64Cursor, params *RISCV64ThreadParams) *VAListParams {
	cursorCopy := *base
	return &VAListParams{conv: &cursorCopy, params: params}
}

// NewVAListParamsFromPointer starts a scan as if every remaining
// argument were stack-passed, for the case where all we have is a raw
// va_list pointer rather than a live call's cursor (e.g. a guest-side
// vprintf-style callback reached through a trampoline with no typed
// named-parameter prefix).
func NewVAListParamsFromPointer(params *RISCV64ThreadParams) *VAListParams {
	conv := callconv.NewLP64Cursor()
	// Claim a0..a7 up front so every later argument is read from the
	// stack area.
	for i := 0; i < 8; i++ {
		conv.NextIntArgLoc(8, 8)
	}
	return &VAListParams{conv: conv, params: params}
}

// GetIntParam returns the next variadic integer-class argument.
func (v *VAListParams) GetIntParam(size, alignment uint32) uint64 {
	loc := v.conv.NextIntArgLoc(size, alignment)
	return v.params.GetInt(loc)
}

// GetFPParam returns the next variadic FP-class argument. Under the
// LP64D ABI, only named parameters use the FP registers; once scanning a
// va_list, every FP-class argument was already promoted to the integer
// convention by the caller per the RISC-V ABI and spec.md §4.4, so this
// also goes through NextIntArgLoc rather than NextFPArgLoc.
func (v *VAListParams) GetFPParam(size, alignment uint32) uint64 {
	loc := v.conv.NextIntArgLoc(size, alignment)
	return v.params.GetFP(loc)
}
