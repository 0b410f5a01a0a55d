package value

import "testing"

func TestLookupSearchesOuterFrames(t *testing.T) {
	root := NewEnvironment()
	root.Bind("x", Number(1))
	child, err := root.Extend(nil, nil)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	v, ok := child.Lookup("x")
	if !ok || v != Number(1) {
		t.Fatalf("expected to find x=1 via outer frame, got %v, %v", v, ok)
	}
}

func TestPrivateBindingsDoNotLeakIntoLookup(t *testing.T) {
	env := NewEnvironment()
	env.BindPrivate("_cp", Number(1))
	if _, ok := env.Lookup("_cp"); ok {
		t.Error("private binding should not be visible via Lookup")
	}
	if _, ok := env.LookupPrivate("_cp"); !ok {
		t.Error("private binding should be visible via LookupPrivate")
	}
}

func TestExtendCreatesChildWithExactArity(t *testing.T) {
	root := NewEnvironment()
	child, err := root.Extend([]string{"x", "y"}, []Value{Number(1), Number(2)})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if v, _ := child.Lookup("x"); v != Number(1) {
		t.Errorf("x = %v, want 1", v)
	}
	if _, err := root.Extend([]string{"x"}, []Value{Number(1), Number(2)}); err == nil {
		t.Error("expected an arity mismatch error")
	}
}

func TestRebindReplacesFrameInPlaceWithNoStaleSlots(t *testing.T) {
	env := NewEnvironment()
	if err := env.Rebind([]string{"x", "y"}, []Value{Number(1), Number(2)}); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if err := env.Rebind([]string{"x"}, []Value{Number(9)}); err != nil {
		t.Fatalf("Rebind: %v", err)
	}
	if _, ok := env.Lookup("y"); ok {
		t.Error("y should not survive a Rebind that only names x")
	}
	if v, _ := env.Lookup("x"); v != Number(9) {
		t.Errorf("x = %v, want 9", v)
	}
}

func TestNamesListsOnlyTheCurrentFramesPublicBindings(t *testing.T) {
	root := NewEnvironment()
	root.Bind("x", Number(1))
	root.BindPrivate("_cp", Number(2))
	child, err := root.Extend([]string{"y"}, []Value{Number(3)})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	names := child.Names()
	if len(names) != 1 || names[0] != "y" {
		t.Errorf("child.Names() = %v, want [y] (not inherited or private bindings)", names)
	}
}

func TestCurrentCallRoundTripsThroughPrivateSlot(t *testing.T) {
	env := NewEnvironment()
	if _, ok := env.CurrentCall(); ok {
		t.Fatal("fresh environment should have no current call record")
	}
	proc := &Compound{Name: "f"}
	rec := &CallRecord{Proc: proc}
	env.SetCurrentCall(rec)
	got, ok := env.CurrentCall()
	if !ok || got != rec {
		t.Fatalf("CurrentCall() = %v, %v; want %v, true", got, ok, rec)
	}
}
