package scoring

import (
	"strconv"

	"github.com/solardome/stratum/internal/gauge"
)

const (
	ToneDefault = "default"
	ToneSuccess = "success"
	ToneWarning = "warning"
	ToneError   = "error"
	ToneInfo    = "info"
	ToneNeutral = "neutral"
)

type Fleet struct {
	TotalInstances      int
	Compliant           int
	NonCompliant        int
	PendingReview       int
	GaugeVisualProgress *float64
}

type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Tone  string `json:"tone"`
	Icon  string `json:"icon"`
	Pulse bool   `json:"pulse"`
}

type Summary struct {
	Score float64     `json:"score"`
	Gauge gauge.Gauge `json:"gauge"`
	Cards []StatCard  `json:"cards"`
}

// FleetScore is the share of compliant instances as a percentage. An empty fleet scores 0.
func FleetScore(total, compliant int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(compliant) * 100 / float64(total)
}

func Summarize(f Fleet, size gauge.Size) Summary {
	score := FleetScore(f.TotalInstances, f.Compliant)
	g := gauge.Compute(gauge.Input{Score: score, VisualProgress: f.GaugeVisualProgress, Size: size})
	nonCompliantTone := ToneDefault
	if f.NonCompliant > 0 {
		nonCompliantTone = ToneError
	}
	pendingTone := ToneDefault
	if f.PendingReview > 0 {
		pendingTone = ToneWarning
	}
	return Summary{
		Score: score,
		Gauge: g,
		Cards: []StatCard{
			{Title: "Total Instances", Value: strconv.Itoa(f.TotalInstances), Tone: ToneDefault, Icon: "server"},
			{Title: "Compliant", Value: strconv.Itoa(f.Compliant), Tone: ToneSuccess, Icon: "check"},
			{Title: "Non-Compliant", Value: strconv.Itoa(f.NonCompliant), Tone: nonCompliantTone, Icon: "x", Pulse: f.NonCompliant > 0},
			{Title: "Pending Review", Value: strconv.Itoa(f.PendingReview), Tone: pendingTone, Icon: "clock"},
		},
	}
}

// RateTone colors a standard's compliance rate: only a perfect rate is a success.
func RateTone(rate float64) string {
	if rate >= 100 {
		return ToneSuccess
	}
	return ToneWarning
}

func AverageRate(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates))
}

func PriorityTone(priority string) string {
	switch normalizeToken(priority) {
	case "high", "critical":
		return ToneError
	case "medium":
		return ToneWarning
	default:
		return ToneNeutral
	}
}

func TicketStatusTone(status string) string {
	if normalizeToken(status) == "open" {
		return ToneInfo
	}
	return ToneNeutral
}

// ActivityTone maps an activity entry's tone token onto a dot color.
func ActivityTone(tone string) string {
	switch normalizeToken(tone) {
	case "error", "violation", "destructive":
		return ToneError
	case "success", "completed":
		return ToneSuccess
	case "warning":
		return ToneWarning
	default:
		return ToneInfo
	}
}
