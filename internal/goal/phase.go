package goal

// Phase identifies a point in the ordered build lifecycle.
type Phase string

const (
	PhaseValidate          Phase = "validate"
	PhaseInitialize        Phase = "initialize"
	PhaseGenerateSources   Phase = "generate-sources"
	PhaseProcessSources    Phase = "process-sources"
	PhaseGenerateResources Phase = "generate-resources"
	PhaseProcessResources  Phase = "process-resources"
	PhaseCompile           Phase = "compile"
	PhasePackage           Phase = "package"
)

var phaseOrder = []Phase{
	PhaseValidate,
	PhaseInitialize,
	PhaseGenerateSources,
	PhaseProcessSources,
	PhaseGenerateResources,
	PhaseProcessResources,
	PhaseCompile,
	PhasePackage,
}

// Phases returns the lifecycle phases in execution order.
func Phases() []Phase {
	return append([]Phase(nil), phaseOrder...)
}

// Index returns the phase's position in the lifecycle, or -1 if unknown.
func (p Phase) Index() int {
	for i, candidate := range phaseOrder {
		if candidate == p {
			return i
		}
	}
	return -1
}

// IsValid returns true if the phase is part of the lifecycle.
func (p Phase) IsValid() bool {
	return p.Index() >= 0
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}
