package envhost

import "testing"

func TestValidKeyAcceptsStandardGrammar(t *testing.T) {
	valid := []string{"FOO", "_FOO", "FOO_BAR", "a1", "_", "A9Z_q"}
	for _, k := range valid {
		if !ValidKey(k) {
			t.Errorf("ValidKey(%q) = false, want true", k)
		}
	}
}

func TestValidKeyRejectsMalformed(t *testing.T) {
	invalid := []string{"", "1FOO", "FOO-BAR", "FOO.BAR", "FOO BAR", "$FOO"}
	for _, k := range invalid {
		if ValidKey(k) {
			t.Errorf("ValidKey(%q) = true, want false", k)
		}
	}
}

type fakeHost struct {
	snapshot map[string]string
	written  map[string]string
}

func newFakeHost(snapshot map[string]string) *fakeHost {
	return &fakeHost{snapshot: snapshot, written: make(map[string]string)}
}

func (h *fakeHost) Snapshot() map[string]string { return h.snapshot }

func (h *fakeHost) Publish(key, value string, override bool) bool {
	if !override {
		if _, exists := h.written[key]; exists {
			return true
		}
		if _, exists := h.snapshot[key]; exists {
			return true
		}
	}
	h.written[key] = value
	return true
}

func TestFakeHostOverrideFalseNoOpsButHandled(t *testing.T) {
	h := newFakeHost(map[string]string{"EXISTING": "old"})
	handled := h.Publish("EXISTING", "new", false)
	if !handled {
		t.Fatal("Publish should report handled=true even as a no-op")
	}
	if _, wrote := h.written["EXISTING"]; wrote {
		t.Error("Publish should not have written over an existing key with override=false")
	}
}

func TestFakeHostOverrideTrueWrites(t *testing.T) {
	h := newFakeHost(map[string]string{"EXISTING": "old"})
	h.Publish("EXISTING", "new", true)
	if got := h.written["EXISTING"]; got != "new" {
		t.Errorf("written[EXISTING] = %q, want %q", got, "new")
	}
}

func TestMapServerHostPublishRespectsOverride(t *testing.T) {
	sh := NewMapServerHost(map[string]any{"A": 1})

	if !sh.PublishServer("A", 2, false) {
		t.Fatal("expected handled=true")
	}
	if got := sh.Map()["A"]; got != 1 {
		t.Errorf("A = %v, want unchanged 1 (override=false)", got)
	}

	if !sh.PublishServer("A", 2, true) {
		t.Fatal("expected handled=true")
	}
	if got := sh.Map()["A"]; got != 2 {
		t.Errorf("A = %v, want 2 after override=true", got)
	}
}

func TestMapServerHostPreservesStructuredValue(t *testing.T) {
	sh := NewMapServerHost(nil)
	arr := []any{"one", "two"}
	sh.PublishServer("ARR", arr, true)
	got, ok := sh.Map()["ARR"].([]any)
	if !ok {
		t.Fatalf("ARR type = %T, want []any", sh.Map()["ARR"])
	}
	if len(got) != 2 {
		t.Errorf("ARR len = %d, want 2", len(got))
	}
}

func TestNewMapServerHostNilAllocatesMap(t *testing.T) {
	sh := NewMapServerHost(nil)
	if sh.Map() == nil {
		t.Fatal("expected non-nil map")
	}
}
