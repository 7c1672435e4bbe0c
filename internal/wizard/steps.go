package wizard

// StepLabel pairs a step with its progress-indicator caption.
type StepLabel struct {
	Step  Step
	Label string
}

// Sequence returns the effective step sequence for a mode. The sequence is
// a function of (mode, preselected info type): compare mode skips the
// product tier, and a preselected info type drops the final step. While the
// mode is undecided the single-branch sequence is shown, matching the
// four-step (or three-step) indicator the user starts from.
func Sequence(mode Mode, preselected bool) []StepLabel {
	var seq []StepLabel
	switch mode {
	case ModeCompare:
		seq = []StepLabel{
			{StepCompanySelect, "회사"},
			{StepCoverageNameSelect, "담보"},
		}
	default:
		seq = []StepLabel{
			{StepCompanySelect, "회사"},
			{StepProductSelect, "상품"},
			{StepCoverageSelect, "담보"},
		}
	}
	if !preselected {
		seq = append(seq, StepLabel{StepInfoTypeSelect, "정보"})
	}
	return seq
}

// Steps returns the progress sequence for the wizard's current mode.
func (b *Builder) Steps() []StepLabel {
	return Sequence(b.mode, b.preselected != nil)
}

// StepIndex returns the zero-based position of the current step within the
// progress sequence. A submit-ready wizard sits on the last step.
func (b *Builder) StepIndex() int {
	for i, s := range b.Steps() {
		if s.Step == b.step {
			return i
		}
	}
	return 0
}
