package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/galton/internal/scene"
	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
)

func manualSession(t *testing.T, paths ...string) *sim.Session {
	t.Helper()
	s := sim.New(sim.DefaultParameters())
	s.SwitchMode(true)
	for _, p := range paths {
		dirs, err := walk.ParseChoices(p)
		if err != nil {
			t.Fatal(err)
		}
		s.Reset()
		for _, d := range dirs {
			s.Choose(d)
		}
	}
	return s
}

func TestSceneToSVG_Theory(t *testing.T) {
	snap := sim.New(sim.DefaultParameters()).Snapshot()
	svg := SceneToSVG(scene.Build(snap), DefaultSVGStyle())

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("expected a complete svg document")
	}
	if !strings.Contains(svg, `width="440" height="600"`) {
		t.Error("expected 440x600 board")
	}
	if got := strings.Count(svg, `r="3"`); got != 121 {
		t.Errorf("expected 121 grid dots, got %d", got)
	}
	// per-bucket rounding places 101 balls for 100 units
	if got, want := strings.Count(svg, `r="6"`), snap.Distribution.Total(); got != want || want != 101 {
		t.Errorf("expected %d balls, got %d", want, got)
	}
	// third ball of the center stack
	if !strings.Contains(svg, `<circle cx="220" cy="372" r="6"`) {
		t.Error("expected stacked ball at 220,372")
	}
	if !strings.Contains(svg, `<text x="220" y="420" text-anchor="middle" fill="black" font-size="12">25</text>`) {
		t.Error("expected center label")
	}
}

func TestSceneToSVG_Manual(t *testing.T) {
	s := manualSession(t, "RRLRLRLLRR")
	s.Reset()
	s.Choose(walk.Left)

	svg := SceneToSVG(scene.Build(s.Snapshot()), DefaultSVGStyle())

	if !strings.Contains(svg, `<g opacity="0.3"`) {
		t.Error("expected faded completed path group")
	}
	if got := strings.Count(svg, "<line"); got != 11 {
		t.Errorf("expected 11 segments, got %d", got)
	}
	if !strings.Contains(svg, `<circle cx="300" cy="400" r="6" fill="red" opacity="0.8"/>`) {
		t.Error("expected endpoint ball at 7,10")
	}
	if !strings.Contains(svg, `<circle cx="180" cy="40" r="6" fill="red"/>`) {
		t.Error("expected opaque current ball at 4,1")
	}
}

func TestWriteJSON(t *testing.T) {
	s := manualSession(t, "RRLRLRLLRR", "LLLLLLLLLL")

	var buf bytes.Buffer
	if err := WriteJSON(&buf, s.Snapshot()); err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Mode != "manual" {
		t.Errorf("expected manual mode, got %s", doc.Mode)
	}
	if len(doc.Completed) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(doc.Completed))
	}
	if doc.Completed[0].Choices != "RRLRLRLLRR" || doc.Completed[0].End != (walk.Position{X: 7, Y: 10}) {
		t.Errorf("unexpected first path %+v", doc.Completed[0])
	}
	if len(doc.Completed[1].Positions) != 11 {
		t.Errorf("expected 11 positions, got %d", len(doc.Completed[1].Positions))
	}
	if doc.Histogram[0] != 1 || doc.Histogram[6] != 1 {
		t.Errorf("unexpected histogram %v", doc.Histogram)
	}
}

func TestWriteCSV(t *testing.T) {
	s := manualSession(t, "RRRRRLLLLL")

	var buf bytes.Buffer
	if err := WriteCSV(&buf, s.Snapshot()); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 12 {
		t.Fatalf("expected header and 11 rows, got %d", len(records))
	}
	center := records[6]
	if center[0] != "5" || center[1] != "5" || center[3] != "25" || center[4] != "1" {
		t.Errorf("unexpected center row %v", center)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"svg", "json", "csv"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := ParseFormat("png"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	snap := sim.New(sim.DefaultParameters()).Snapshot()

	for _, f := range []Format{FormatSVG, FormatJSON, FormatCSV} {
		path := filepath.Join(dir, "board."+string(f))
		if err := Save(path, f, snap, DefaultSVGStyle()); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s: empty file", f)
		}
	}

	if err := Save(filepath.Join(dir, "missing", "x.svg"), FormatSVG, snap, DefaultSVGStyle()); err == nil {
		t.Error("expected error for missing directory")
	}
}
