package walk

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewWalker(t *testing.T) {
	w := New(DefaultSteps)

	if w.Position() != (Position{X: 5, Y: 0}) {
		t.Errorf("expected origin 5,0, got %v", w.Position())
	}
	if w.Complete() {
		t.Error("new walker should not be complete")
	}
	if len(w.Path()) != 1 {
		t.Errorf("expected path of length 1, got %d", len(w.Path()))
	}
	if w.CompletedCount() != 0 {
		t.Errorf("expected no completed paths, got %d", w.CompletedCount())
	}
}

func TestChoose_Moves(t *testing.T) {
	w := New(DefaultSteps)

	w.Choose(Left)
	if w.Position() != (Position{X: 4, Y: 1}) {
		t.Errorf("after left expected 4,1, got %v", w.Position())
	}
	w.Choose(Right)
	if w.Position() != (Position{X: 5, Y: 2}) {
		t.Errorf("after right expected 5,2, got %v", w.Position())
	}

	path := w.Path()
	if len(path) != 3 {
		t.Fatalf("expected path length 3, got %d", len(path))
	}
	if end, _ := path.End(); end != w.Position() {
		t.Errorf("path should end at current position, got %v", end)
	}
}

func TestChoose_FinalPosition(t *testing.T) {
	w := New(DefaultSteps)
	dirs, err := ParseChoices("RRLRLRLLRR")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	for _, d := range dirs {
		if !w.Choose(d) {
			t.Fatalf("choice %v rejected", d)
		}
	}

	if w.Position() != (Position{X: 7, Y: 10}) {
		t.Errorf("expected final position 7,10, got %v", w.Position())
	}
	if !w.Complete() {
		t.Error("expected walker to be complete")
	}
	completed := w.Completed()
	if len(completed) != 1 {
		t.Fatalf("expected 1 completed path, got %d", len(completed))
	}
	if len(completed[0]) != DefaultSteps+1 {
		t.Errorf("expected completed path of length %d, got %d", DefaultSteps+1, len(completed[0]))
	}
}

func TestChoose_AfterCompletionIsNoop(t *testing.T) {
	w := New(4)
	for i := 0; i < 4; i++ {
		w.Choose(Right)
	}

	pos, path, choices, completed := w.Position(), w.Path(), w.Choices(), w.Completed()

	if w.Choose(Left) {
		t.Error("expected choice after completion to be rejected")
	}

	if w.Position() != pos {
		t.Errorf("position changed: %v -> %v", pos, w.Position())
	}
	if !reflect.DeepEqual(w.Path(), path) {
		t.Error("path changed after rejected choice")
	}
	if !reflect.DeepEqual(w.Choices(), choices) {
		t.Error("choices changed after rejected choice")
	}
	if !reflect.DeepEqual(w.Completed(), completed) {
		t.Error("completed paths changed after rejected choice")
	}
	if !w.Complete() {
		t.Error("walker should still be complete")
	}
}

func TestReset_KeepsCompletedPaths(t *testing.T) {
	w := New(DefaultSteps)
	for i := 0; i < DefaultSteps; i++ {
		w.Choose(Left)
	}
	first := w.Completed()[0].Clone()

	w.Reset()
	if w.Position() != w.Origin() {
		t.Errorf("reset should return to origin, got %v", w.Position())
	}
	if w.Complete() {
		t.Error("reset should clear completion")
	}
	if w.Taken() != 0 {
		t.Errorf("expected 0 choices after reset, got %d", w.Taken())
	}

	for i := 0; i < DefaultSteps; i++ {
		w.Choose(Right)
	}

	completed := w.Completed()
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed paths, got %d", len(completed))
	}
	if !reflect.DeepEqual(completed[0], first) {
		t.Errorf("first path was mutated: %v", completed[0])
	}
	if completed[1][0] != w.Origin() {
		t.Errorf("second path should start at origin, got %v", completed[1][0])
	}
}

func TestCompleted_ReturnsCopies(t *testing.T) {
	w := New(2)
	w.Choose(Left)
	w.Choose(Left)

	got := w.Completed()
	got[0][1] = Position{X: 99, Y: 99}

	if w.Completed()[0][1] == (Position{X: 99, Y: 99}) {
		t.Error("caller mutation leaked into walker history")
	}
}

func TestClear(t *testing.T) {
	w := New(2)
	w.Choose(Right)
	w.Choose(Right)
	w.Clear()

	if w.CompletedCount() != 0 {
		t.Errorf("expected no completed paths after clear, got %d", w.CompletedCount())
	}
	if w.Position() != w.Origin() {
		t.Errorf("expected origin after clear, got %v", w.Position())
	}
}

func TestZeroSteps(t *testing.T) {
	w := New(0)
	if w.Choose(Left) {
		t.Error("zero-step walker should reject every choice")
	}
	if w.Origin() != (Position{}) {
		t.Errorf("expected origin 0,0, got %v", w.Origin())
	}
	if !w.Complete() {
		t.Error("zero-step path is complete at the origin")
	}
	w.Reset()
	if !w.Complete() || w.Remaining() != 0 {
		t.Error("zero-step walker should stay complete after reset")
	}
	if w.CompletedCount() != 0 {
		t.Errorf("expected no completed paths, got %d", w.CompletedCount())
	}
}

func TestStacks(t *testing.T) {
	w := New(DefaultSteps)
	play := func(s string) {
		dirs, err := ParseChoices(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		w.Reset()
		for _, d := range dirs {
			w.Choose(d)
		}
	}

	play("RRRRRLLLLL")
	play("LLLLLRRRRR")
	play("RRRRRRRRRR")

	stacks := w.Stacks()
	center := Position{X: 5, Y: 10}
	edge := Position{X: 15, Y: 10}

	if stacks.Count(center) != 2 {
		t.Errorf("expected 2 paths at center, got %d", stacks.Count(center))
	}
	if stacks.Count(edge) != 1 {
		t.Errorf("expected 1 path at edge, got %d", stacks.Count(edge))
	}
	if stacks[center][0][1] != (Position{X: 6, Y: 1}) {
		t.Errorf("expected first center path to start right, got %v", stacks[center][0][1])
	}
	if stacks[center][1][1] != (Position{X: 4, Y: 1}) {
		t.Errorf("expected second center path to start left, got %v", stacks[center][1][1])
	}

	positions := stacks.Positions()
	if len(positions) != 2 || positions[0] != center || positions[1] != edge {
		t.Errorf("unexpected positions order: %v", positions)
	}
}

func TestHistogram(t *testing.T) {
	w := New(4)
	for _, s := range []string{"LLLL", "RRRR", "LRLR", "RLRL"} {
		w.Reset()
		dirs, _ := ParseChoices(s)
		for _, d := range dirs {
			w.Choose(d)
		}
	}

	want := []int{1, 0, 2, 0, 1}
	if got := w.Histogram(); !reflect.DeepEqual(got, want) {
		t.Errorf("Histogram() = %v, want %v", got, want)
	}
}

func TestParseChoices(t *testing.T) {
	dirs, err := ParseChoices("r, L r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(dirs, []Direction{Right, Left, Right}) {
		t.Errorf("unexpected dirs %v", dirs)
	}
	if FormatChoices(dirs) != "RLR" {
		t.Errorf("FormatChoices = %q", FormatChoices(dirs))
	}

	if _, err := ParseChoices("RLX"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"left", Left, true},
		{"L", Left, true},
		{" Right ", Right, true},
		{"r", Right, true},
		{"up", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseDirection(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseDirection(%q) expected error", tt.in)
		}
	}
}

func TestPathDirections(t *testing.T) {
	choices, err := ParseChoices("RRLRLRLLRR")
	if err != nil {
		t.Fatal(err)
	}

	w := New(DefaultSteps)
	for _, d := range choices {
		w.Choose(d)
	}

	if got := FormatChoices(w.Path().Directions()); got != "RRLRLRLLRR" {
		t.Errorf("expected RRLRLRLLRR, got %s", got)
	}
	if Path(nil).Directions() != nil {
		t.Error("empty path should have no directions")
	}
}
