package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/galton/internal/scene"
)

// Board geometry in SVG user units.
const (
	CellSize     = 40
	BallRadius   = 6
	BallSpacing  = 14
	DotRadius    = 3
	LabelOffset  = 20
	FooterHeight = 200
	FontSize     = 12
)

// SVGStyle holds the fill colors used by SceneToSVG.
type SVGStyle struct {
	Background string
	Dot        string
	Ball       string
	Path       string
	Text       string
}

func DefaultSVGStyle() SVGStyle {
	return SVGStyle{
		Background: "#f3f4f6",
		Dot:        "gray",
		Ball:       "red",
		Path:       "blue",
		Text:       "black",
	}
}

// Size returns the pixel dimensions of a scene.
func Size(sc scene.Scene) (w, h int) {
	rows := sc.Rows - 1
	if rows < 0 {
		rows = 0
	}
	return CellSize * sc.Cols, CellSize*rows + FooterHeight
}

func px(c float64) float64 { return CellSize*c + CellSize/2 }
func py(r float64) float64 { return CellSize * r }

func stackY(b scene.Ball) float64 {
	return py(b.Row) - float64(b.Stack*BallSpacing)
}

// SceneToSVG renders a board scene. Primitives outside the grid are emitted
// as-is and clipped by the viewBox.
func SceneToSVG(sc scene.Scene, style SVGStyle) string {
	w, h := Size(sc)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, style.Background))

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", style.Dot))
	for _, d := range sc.Dots {
		sb.WriteString(fmt.Sprintf("<circle cx=\"%g\" cy=\"%g\" r=\"%d\"/>\n", px(d.Col), py(d.Row), DotRadius))
	}
	sb.WriteString("</g>\n")

	var faded, live []scene.Segment
	for _, s := range sc.Segments {
		if s.Faded {
			faded = append(faded, s)
		} else {
			live = append(live, s)
		}
	}
	if len(faded) > 0 {
		sb.WriteString(fmt.Sprintf("<g opacity=\"0.3\" stroke=\"%s\" stroke-width=\"2\">\n", style.Path))
		writeSegments(&sb, faded)
		sb.WriteString("</g>\n")
	}
	if len(live) > 0 {
		sb.WriteString(fmt.Sprintf("<g stroke=\"%s\" stroke-width=\"2\">\n", style.Path))
		writeSegments(&sb, live)
		sb.WriteString("</g>\n")
	}

	for _, b := range sc.Balls {
		opacity := ` opacity="0.8"`
		if b.Kind == scene.BallCurrent {
			opacity = ""
		}
		sb.WriteString(fmt.Sprintf("<circle cx=\"%g\" cy=\"%g\" r=\"%d\" fill=\"%s\"%s/>\n",
			px(b.Col), stackY(b), BallRadius, style.Ball, opacity))
	}

	for _, l := range sc.Labels {
		sb.WriteString(fmt.Sprintf("<text x=\"%g\" y=\"%g\" text-anchor=\"middle\" fill=\"%s\" font-size=\"%d\">%s</text>\n",
			px(l.Col), py(l.Row)+LabelOffset, style.Text, FontSize, l.Text))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeSegments(sb *strings.Builder, segs []scene.Segment) {
	for _, s := range segs {
		sb.WriteString(fmt.Sprintf("<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"/>\n",
			px(s.From.Col), py(s.From.Row), px(s.To.Col), py(s.To.Row)))
	}
}

func WriteSVG(w io.Writer, sc scene.Scene, style SVGStyle) error {
	_, err := io.WriteString(w, SceneToSVG(sc, style))
	return err
}

func SaveSVG(path string, sc scene.Scene, style SVGStyle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer f.Close()
	if err := WriteSVG(f, sc, style); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
