package presentation

import (
	"strconv"
	"strings"
	"unicode"

	"placement-directory/internal/models"
)

// Tone tells the client which colour family a badge uses.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func lpa(v float64) string {
	return number(v) + " LPA"
}

func percent(v float64) string {
	return number(v) + "%"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// TrendLabel renders a hiring trend as "Increasing Hiring".
func TrendLabel(t models.HiringTrend) string {
	return capitalize(string(t)) + " Hiring"
}

func trendTone(t models.HiringTrend) Tone {
	switch t {
	case models.HiringTrendIncreasing:
		return TonePositive
	case models.HiringTrendDecreasing:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// WebsiteHref returns "https://{website}", or "" when no website is known.
func WebsiteHref(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	return "https://" + website
}

// DetailHref is the listing card link to a company page.
func DetailHref(id string) string {
	return "/company/" + id
}
