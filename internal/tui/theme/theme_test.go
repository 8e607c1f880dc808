package theme

import "testing"

func TestByName(t *testing.T) {
	for _, name := range Names() {
		if got := ByName(name).Name; got != name {
			t.Errorf("ByName(%q) = %q", name, got)
		}
	}
	if ByName("nope").Name != FlexokiDark.Name {
		t.Error("unknown theme should fall back to flexoki-dark")
	}
}

func TestSliceColorCycles(t *testing.T) {
	th := TokyoNight
	n := len(th.Slices())
	if th.SliceColor(0) != th.SliceColor(n) {
		t.Error("slice palette should cycle")
	}
	if th.StatusColor(true) != th.Red || th.StatusColor(false) != th.Green {
		t.Error("StatusColor mismatch")
	}
}
