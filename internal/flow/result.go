package flow

// resultKind enumerates the possible step transition outcomes.
type resultKind int

const (
	resultReject resultKind = iota
	resultAdvance
	resultJump
	resultBack
	resultTerminate
)

// Result is the transition decision returned by a step handler. The
// engine applies it to the cursor; handlers never move the cursor
// themselves.
type Result struct {
	kind   resultKind
	target int
}

// Reject keeps the cursor where it is; the step re-prompts.
func Reject() Result {
	return Result{kind: resultReject}
}

// Advance moves the cursor to the next step.
func Advance() Result {
	return Result{kind: resultAdvance}
}

// JumpTo moves the cursor to an explicit step index, skipping any steps
// in between.
func JumpTo(index int) Result {
	return Result{kind: resultJump, target: index}
}

// Back moves the cursor one step backwards and re-runs that step's
// entry action. A no-op at step 0.
func Back() Result {
	return Result{kind: resultBack}
}

// Terminate ends the wizard.
func Terminate() Result {
	return Result{kind: resultTerminate}
}
