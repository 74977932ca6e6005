package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/scene"
	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
)

// Document is the JSON form of a session snapshot.
type Document struct {
	Mode          string             `json:"mode"`
	Probability   float64            `json:"probability"`
	TotalUnits    float64            `json:"total_units"`
	Steps         int                `json:"steps"`
	Distribution  []int              `json:"distribution"`
	Probabilities []float64          `json:"probabilities"`
	Drift         float64            `json:"drift"`
	Origin        walk.Position      `json:"origin"`
	Position      walk.Position      `json:"position"`
	Choices       string             `json:"choices"`
	Complete      bool               `json:"complete"`
	Completed     []PathRecord       `json:"completed"`
	Histogram     []int              `json:"histogram"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
}

type PathRecord struct {
	Choices   string          `json:"choices"`
	End       walk.Position   `json:"end"`
	Positions []walk.Position `json:"positions"`
}

func NewDocument(snap sim.Snapshot) Document {
	p := snap.Params
	doc := Document{
		Mode:          snap.Mode.String(),
		Probability:   p.RightProbability,
		TotalUnits:    p.TotalUnits,
		Steps:         p.Steps,
		Distribution:  []int(snap.Distribution),
		Probabilities: binomial.Probabilities(p.Steps, p.RightProbability),
		Drift:         snap.Distribution.Drift(p.TotalUnits),
		Origin:        snap.Origin,
		Position:      snap.Position,
		Choices:       walk.FormatChoices(snap.Choices),
		Complete:      snap.Complete,
		Completed:     make([]PathRecord, 0, len(snap.Completed)),
		Histogram:     snap.Histogram,
		Metrics:       snap.Metrics,
	}
	for _, path := range snap.Completed {
		end, _ := path.End()
		doc.Completed = append(doc.Completed, PathRecord{
			Choices:   walk.FormatChoices(path.Directions()),
			End:       end,
			Positions: path,
		})
	}
	return doc
}

func WriteJSON(w io.Writer, snap sim.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(snap))
}

// WriteCSV writes one row per bucket comparing the theoretical counts with
// the endpoints of completed paths.
func WriteCSV(w io.Writer, snap sim.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bucket", "column", "probability", "expected", "observed"}); err != nil {
		return err
	}

	p := snap.Params
	probs := binomial.Probabilities(p.Steps, p.RightProbability)
	for k, prob := range probs {
		expected, observed := 0, 0
		if k < len(snap.Distribution) {
			expected = snap.Distribution[k]
		}
		if k < len(snap.Histogram) {
			observed = snap.Histogram[k]
		}
		row := []string{
			strconv.Itoa(k),
			strconv.FormatFloat(binomial.Column(k, snap.Origin.X, p.Steps), 'f', -1, 64),
			strconv.FormatFloat(prob, 'f', 6, 64),
			strconv.Itoa(expected),
			strconv.Itoa(observed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Format selects an output encoding for Save.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSVG, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write encodes snap in the given format.
func Write(w io.Writer, f Format, snap sim.Snapshot, style SVGStyle) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, scene.Build(snap), style)
	case FormatJSON:
		return WriteJSON(w, snap)
	case FormatCSV:
		return WriteCSV(w, snap)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

func Save(path string, f Format, snap sim.Snapshot, style SVGStyle) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	if err := Write(file, f, snap, style); err != nil {
		return fmt.Errorf("write %s: %w", f, err)
	}
	return nil
}
