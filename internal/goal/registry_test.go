package goal

import (
	"context"
	"testing"
)

// mockGoal is a test goal for registry tests.
type mockGoal struct {
	metadata Metadata
	run      func(ctx context.Context, goalCtx *Context) error
}

func (m *mockGoal) Metadata() Metadata {
	return m.metadata
}

func (m *mockGoal) Execute(ctx context.Context, goalCtx *Context) error {
	if m.run != nil {
		return m.run(ctx, goalCtx)
	}
	return nil
}

func newMockGoal(name string, phase Phase) *mockGoal {
	return &mockGoal{
		metadata: Metadata{
			Name:  name,
			Phase: phase,
		},
	}
}

// TestRegistryRegister tests goal registration.
func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	g := newMockGoal("extract", PhaseGenerateResources)

	if err := registry.Register(g); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if !registry.Has("extract") {
		t.Error("Goal should be registered")
	}

	if err := registry.Register(g); err == nil {
		t.Error("Should not allow duplicate registration")
	}
}

// TestRegistryRegisterNil tests registering nil goal.
func TestRegistryRegisterNil(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Error("Should not allow registering nil goal")
	}
}

// TestRegistryRegisterInvalidMetadata tests registering goals with invalid metadata.
func TestRegistryRegisterInvalidMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata Metadata
	}{
		{"missing name", Metadata{Phase: PhaseCompile}},
		{"unknown phase", Metadata{Name: "x", Phase: "deploy-to-mars"}},
		{"unknown resolution", Metadata{Name: "x", Phase: PhaseCompile, Resolution: "test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			if err := registry.Register(&mockGoal{metadata: tt.metadata}); err == nil {
				t.Error("Should not allow goal with invalid metadata")
			}
		})
	}
}

// TestRegistryGet tests retrieving goals.
func TestRegistryGet(t *testing.T) {
	registry := NewRegistry().MustRegister(newMockGoal("extract", PhaseGenerateResources))

	retrieved, err := registry.Get("extract")
	if err != nil {
		t.Errorf("Get() failed: %v", err)
	}
	if retrieved == nil {
		t.Error("Retrieved goal should not be nil")
	}

	if _, err := registry.Get("non-existent"); err == nil {
		t.Error("Should return error for non-existent goal")
	}
}

// TestRegistryListOrder tests that List orders by phase then name.
func TestRegistryListOrder(t *testing.T) {
	registry := NewRegistry().MustRegister(
		newMockGoal("zeta", PhaseGenerateResources),
		newMockGoal("alpha", PhaseGenerateResources),
		newMockGoal("check", PhaseValidate),
		newMockGoal("jar", PhasePackage),
	)

	var names []string
	for _, g := range registry.List() {
		names = append(names, g.Metadata().Name)
	}

	want := []string{"check", "alpha", "zeta", "jar"}
	if len(names) != len(want) {
		t.Fatalf("List() returned %v, expected %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %s, expected %s", i, names[i], want[i])
		}
	}
}

// TestRegistryListByPhase tests listing goals by phase.
func TestRegistryListByPhase(t *testing.T) {
	registry := NewRegistry().MustRegister(
		newMockGoal("extract", PhaseGenerateResources),
		newMockGoal("copy", PhaseGenerateResources),
		newMockGoal("check", PhaseValidate),
	)

	if got := registry.ListByPhase(PhaseGenerateResources); len(got) != 2 {
		t.Errorf("ListByPhase(generate-resources) returned %d goals, expected 2", len(got))
	}
	if got := registry.ListByPhase(PhaseCompile); len(got) != 0 {
		t.Errorf("ListByPhase(compile) returned %d goals, expected 0", len(got))
	}
}

// TestRegistryUnregister tests removing goals.
func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry().MustRegister(newMockGoal("extract", PhaseGenerateResources))

	if err := registry.Unregister("extract"); err != nil {
		t.Fatalf("Unregister() failed: %v", err)
	}
	if registry.Count() != 0 {
		t.Errorf("Count() = %d after unregister, expected 0", registry.Count())
	}
	if err := registry.Unregister("extract"); err == nil {
		t.Error("Should return error when unregistering a missing goal")
	}
}

func TestPhaseOrder(t *testing.T) {
	if PhaseValidate.Index() != 0 {
		t.Errorf("validate should be the first phase")
	}
	if PhaseGenerateResources.Index() >= PhaseCompile.Index() {
		t.Errorf("generate-resources must run before compile")
	}
	if Phase("nope").IsValid() {
		t.Errorf("unknown phase reported valid")
	}
	if len(Phases()) != 8 {
		t.Errorf("Phases() = %d, expected 8", len(Phases()))
	}
}
