package util

import (
	"fmt"
	"strconv"
	"strings"
)

// LevenshteinDistance calculates the edit distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}

// ClosestName returns the candidate nearest to name, ignoring case and
// surrounding space, when it is within maxDistance edits
func ClosestName(name string, candidates []string, maxDistance int) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	best, bestDistance := "", maxDistance+1
	for _, c := range candidates {
		d := LevenshteinDistance(name, strings.ToLower(strings.TrimSpace(c)))
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, best != ""
}

// GetAsString converts a loosely typed parameter to a string
func GetAsString(s any) (string, error) {
	switch v := s.(type) {
	case nil:
		return "", fmt.Errorf("cannot convert nil to string")
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// GetAsFloat converts a loosely typed parameter to a float.
// Numeric strings are accepted since some clients quote every argument.
func GetAsFloat(s any) (float64, error) {
	switch v := s.(type) {
	case nil:
		return 0, fmt.Errorf("cannot convert nil to float")
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to float: %w", v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to float", s)
	}
}

// GetAsInteger converts a loosely typed parameter to a whole number
func GetAsInteger(s any) (int, error) {
	switch v := s.(type) {
	case int:
		return v, nil
	case string:
		result, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("cannot convert string '%s' to integer: %w", v, err)
		}
		return result, nil
	}
	f, err := GetAsFloat(s)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("value %v is not a whole number", f)
	}
	return int(f), nil
}
