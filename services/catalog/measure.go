package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultUnit = "piece"

// 依序嘗試：帶分數、分數、小數/整數
var leadingNumber = regexp.MustCompile(`^\s*(\d+\s+\d+/\d+|\d+/\d+|\d*\.\d+|\d+)\s*(.*)$`)

// ParseMeasure splits a free-text measure such as "1 1/2 cups" or "250g" into a
// quantity and unit. Anything without a leading number is one piece.
func ParseMeasure(measure string) (float64, string) {
	match := leadingNumber.FindStringSubmatch(measure)
	if match == nil {
		return 1, defaultUnit
	}
	quantity, ok := parseQuantity(match[1])
	if !ok {
		return 1, defaultUnit
	}
	unit := strings.TrimSpace(match[2])
	if unit == "" {
		unit = defaultUnit
	}
	return quantity, unit
}

func parseQuantity(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 2 {
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		fraction, ok := parseFraction(fields[1])
		if !ok {
			return 0, false
		}
		return whole + fraction, true
	}
	if strings.Contains(text, "/") {
		return parseFraction(text)
	}
	value, err := strconv.ParseFloat(text, 64)
	return value, err == nil
}

func parseFraction(text string) (float64, bool) {
	parts := strings.SplitN(text, "/", 2)
	if len(parts) != 2 {
		return 0, false
	}
	numerator, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	denominator, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || denominator == 0 {
		return 0, false
	}
	return numerator / denominator, true
}
