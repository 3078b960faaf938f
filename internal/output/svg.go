package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/masmgr/commitgraph/config"
	"github.com/masmgr/commitgraph/internal/graph"
)

const (
	svgVertexRadius = 4
	svgStrokeWidth  = 2
	svgTextGap      = 12
	svgCharWidth    = 7
)

// SVGGraphWriter renders the commit graph as a standalone SVG document.
type SVGGraphWriter struct{}

// svgCanvas converts grid units to pixels.
type svgCanvas struct {
	render config.RenderConfig
}

func (c svgCanvas) x(col int) float64 {
	return float64(c.render.Grid.OffsetX + col*c.render.Grid.X)
}

func (c svgCanvas) y(row int) float64 {
	return float64(c.render.Grid.OffsetY + row*c.render.Grid.Y)
}

func (c svgCanvas) colour(index int) string {
	palette := c.render.Colours
	if len(palette) == 0 {
		palette = config.DefaultColours
	}
	if index < 0 {
		index = 0
	}
	return palette[index%len(palette)]
}

// path builds the drawing instructions for one segment. Rounded style bends
// with a cubic curve over one row; angular style uses a straight diagonal.
func (c svgCanvas) path(l graph.Line) string {
	x1, y1 := c.x(l.P1.X), c.y(l.P1.Y)
	x2, y2 := c.x(l.P2.X), c.y(l.P2.Y)
	d := float64(c.render.Grid.Y)

	var sb strings.Builder
	fmt.Fprintf(&sb, "M%.1f,%.1f", x1, y1)
	switch l.Curve {
	case graph.CurveFirst:
		if c.render.Style == config.StyleAngular {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x2, y1+d)
		} else {
			fmt.Fprintf(&sb, " C%.1f,%.1f %.1f,%.1f %.1f,%.1f", x1, y1+d*0.8, x2, y1+d*0.2, x2, y1+d)
		}
		fmt.Fprintf(&sb, " L%.1f,%.1f", x2, y2)
	case graph.CurveLast:
		fmt.Fprintf(&sb, " L%.1f,%.1f", x1, y2-d)
		if c.render.Style == config.StyleAngular {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x2, y2)
		} else {
			fmt.Fprintf(&sb, " C%.1f,%.1f %.1f,%.1f %.1f,%.1f", x1, y2-d*0.2, x2, y2-d*0.8, x2, y2)
		}
	default:
		fmt.Fprintf(&sb, " L%.1f,%.1f", x2, y2)
	}
	return sb.String()
}

// Write outputs the commit graph as SVG.
func (w *SVGGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	_, err = fmt.Fprint(out, renderSVG(report, options.Render))
	return err
}

func renderSVG(report *GraphReport, render config.RenderConfig) string {
	g := report.Graph
	canvas := svgCanvas{render: render}

	textX := canvas.x(g.ContentWidth()) + svgTextGap
	longest := 0
	for _, rec := range report.Records {
		longest = max(longest, len(rec.Message)+len(displayHash(rec))+1)
	}
	width := int(textX) + longest*svgCharWidth
	height := int(canvas.y(g.Len()))

	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\">\n", width, height)

	sb.WriteString("<g class=\"lines\" fill=\"none\">\n")
	for _, br := range g.Branches() {
		for _, l := range br.Lines {
			fmt.Fprintf(&sb, "<path d=\"%s\" stroke=\"%s\" stroke-width=\"%d\"", canvas.path(l), canvas.colour(l.ColourIndex), svgStrokeWidth)
			if !l.Committed {
				sb.WriteString(" stroke-dasharray=\"2\"")
			}
			sb.WriteString("/>\n")
		}
	}
	sb.WriteString("</g>\n")

	sb.WriteString("<g class=\"commits\">\n")
	for _, c := range g.Commits() {
		if c.Column < 0 {
			continue
		}
		fill := canvas.colour(c.ColourIndex)
		stroke := fill
		if !c.Committed || c.IsStash {
			fill = "none"
		}
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%d\" fill=\"%s\" stroke=\"%s\"", canvas.x(c.Column), canvas.y(c.Row), svgVertexRadius, fill, stroke)
		if c.Muted {
			sb.WriteString(" opacity=\"0.5\"")
		}
		sb.WriteString("/>\n")
	}
	sb.WriteString("</g>\n")

	sb.WriteString("<g class=\"labels\" font-family=\"monospace\" font-size=\"12\">\n")
	for _, c := range g.Commits() {
		rec := report.Records[c.Row]
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" dominant-baseline=\"middle\">%s %s</text>\n",
			textX, canvas.y(c.Row), html.EscapeString(displayHash(rec)), html.EscapeString(rec.Message))
	}
	sb.WriteString("</g>\n")

	sb.WriteString("</svg>\n")
	return sb.String()
}
