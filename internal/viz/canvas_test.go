package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetAndUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	if got := c.Grid[0][0]; got != 0x2801 {
		t.Errorf("expected ⠁, got %U", got)
	}
	if got := c.Grid[0][1]; got != 0x2880 {
		t.Errorf("expected ⢀, got %U", got)
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if !c.Empty(0, 0) {
		t.Error("expected empty cell after Unset")
	}
}

func TestCanvas_OutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != 0x2800 && r != '\n' }) {
		t.Error("out of bounds points should not be drawn")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("expected diagonal pixel %d,%d", i, i)
		}
	}
}

func TestCanvas_DrawDisc(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawDisc(4, 4, 1)
	for _, p := range [][2]int{{4, 4}, {3, 4}, {5, 4}, {4, 3}, {4, 5}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected %v lit", p)
		}
	}
	if c.IsSet(3, 3) {
		t.Error("corner should stay dark for r=1")
	}

	c.Clear()
	c.DrawDisc(2, 2, 0)
	if !c.IsSet(2, 2) {
		t.Error("r=0 should set a single pixel")
	}
}
