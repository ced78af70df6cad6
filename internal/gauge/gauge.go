package gauge

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

type Severity string

const (
	SeverityHealthy  Severity = "healthy"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	HealthyFloor = 95.0
	WarningFloor = 80.0
	Caption      = "Compliant"
)

// Geometry is the fixed layout of one gauge size. TextPx and LabelPx are the pixel
// sizes behind the TextSize and LabelSize classes, for renderers without a stylesheet.
type Geometry struct {
	Radius      float64
	StrokeWidth float64
	ViewBox     int
	TextSize    string
	LabelSize   string
	TextPx      int
	LabelPx     int
}

var geometries = map[Size]Geometry{
	SizeLarge:  {Radius: 70, StrokeWidth: 14, ViewBox: 180, TextSize: "text-4xl", LabelSize: "text-sm", TextPx: 36, LabelPx: 14},
	SizeMedium: {Radius: 55, StrokeWidth: 12, ViewBox: 140, TextSize: "text-2xl", LabelSize: "text-xs", TextPx: 24, LabelPx: 12},
	SizeSmall:  {Radius: 38, StrokeWidth: 10, ViewBox: 100, TextSize: "text-lg", LabelSize: "text-xs", TextPx: 18, LabelPx: 12},
}

// Input is one render request. VisualProgress drives only the arc; nil means Score.
type Input struct {
	Score          float64
	VisualProgress *float64
	Size           Size
}

type Gauge struct {
	Score         float64  `json:"score"`
	Progress      float64  `json:"progress"`
	Size          Size     `json:"size"`
	Radius        float64  `json:"radius"`
	StrokeWidth   float64  `json:"stroke_width"`
	Circumference float64  `json:"circumference"`
	DashArray     float64  `json:"dash_array"`
	DashOffset    float64  `json:"dash_offset"`
	Severity      Severity `json:"severity"`
	Color         string   `json:"color"`
	TextClass     string   `json:"text_class"`
	StrokeClass   string   `json:"stroke_class"`
	Label         string   `json:"label"`
	Caption       string   `json:"caption"`
	ViewBox       int      `json:"view_box"`
	Center        float64  `json:"center"`
	TextSize      string   `json:"text_size"`
	LabelSize     string   `json:"label_size"`
}

// Compute maps a score to ring geometry and a severity tier. It never clamps or
// rejects input: out-of-range scores overflow the ring and NaN propagates.
func Compute(in Input) Gauge {
	size := in.Size
	geo, ok := GeometryFor(size)
	if !ok {
		size = SizeLarge
	}
	progress := in.Score
	if in.VisualProgress != nil {
		progress = *in.VisualProgress
	}
	circumference := 2 * math.Pi * geo.Radius
	offset := circumference - (progress/100)*circumference

	sev := Classify(in.Score)
	color := sev.Color()
	return Gauge{
		Score:         in.Score,
		Progress:      progress,
		Size:          size,
		Radius:        geo.Radius,
		StrokeWidth:   geo.StrokeWidth,
		Circumference: circumference,
		DashArray:     circumference,
		DashOffset:    offset,
		Severity:      sev,
		Color:         color,
		TextClass:     "text-" + color,
		StrokeClass:   "stroke-" + color,
		Label:         FormatLabel(in.Score),
		Caption:       Caption,
		ViewBox:       geo.ViewBox,
		Center:        float64(geo.ViewBox) / 2,
		TextSize:      geo.TextSize,
		LabelSize:     geo.LabelSize,
	}
}

func Classify(score float64) Severity {
	switch {
	case score >= HealthyFloor:
		return SeverityHealthy
	case score >= WarningFloor:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// Color returns the design-token name shared by the text and stroke classes.
func (s Severity) Color() string {
	switch s {
	case SeverityHealthy:
		return "success"
	case SeverityWarning:
		return "warning"
	default:
		return "destructive"
	}
}

// FormatLabel renders score with one decimal. Rounding works on the exact binary
// value and breaks ties away from zero, so 97.25 reads 97.3% while 0.15 (stored
// just below 0.15) reads 0.1%.
func FormatLabel(score float64) string {
	return oneDecimal(score) + "%"
}

func oneDecimal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	a := math.Abs(v)
	if a >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	// 53-bit mantissa times 10 plus one half fits well inside 128 bits.
	x := new(big.Float).SetPrec(128).SetFloat64(a)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil)
	ten := big.NewInt(10)
	whole, frac := new(big.Int).QuoRem(n, ten, new(big.Int))
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%s", sign, whole.String(), frac.String())
}

func ParseSize(s string) (Size, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "lg", "large":
		return SizeLarge, nil
	case "md", "medium":
		return SizeMedium, nil
	case "sm", "small":
		return SizeSmall, nil
	default:
		return "", fmt.Errorf("unknown gauge size %q (want sm, md or lg)", s)
	}
}

// GeometryFor returns the layout for size, falling back to the large gauge. The
// boolean reports whether size was known.
func GeometryFor(size Size) (Geometry, bool) {
	g, ok := geometries[size]
	if !ok {
		return geometries[SizeLarge], false
	}
	return g, true
}
