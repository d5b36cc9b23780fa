package utils

import (
	"regexp"
	"strings"
)

var (
	// words of a PascalCase / camelCase key, with an optional leading uncased run.
	// Scripts without case (Ethiopic, CJK) stay within a single word.
	keyWordRegex = regexp.MustCompile(`^[\p{Ll}\p{Lo}\p{Lm}\p{M}\p{N}_]+|[\p{Lu}\p{Lt}][\p{Ll}\p{Lo}\p{Lm}\p{M}\p{N}_]*`)

	// key=value pairs anywhere in a loosely formatted body, in any script
	keyValueRegex = regexp.MustCompile(`([\p{L}\p{M}\p{N}_]+)=([\p{L}\p{M}\p{N}_.\-]+)`)
)

// KeyValue is a single pair extracted by ParseKeyValues.
type KeyValue struct {
	Key   string
	Value string
}

// ToSnakeCase converts gateway keys such as "BuyerID" or "TotalAmount"
// into "buyer_id" and "total_amount".
func ToSnakeCase(key string) string {
	// Treat every run of "ID" as a single word
	key = strings.ReplaceAll(key, "ID", "Id")

	words := keyWordRegex.FindAllString(key, -1)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return strings.Join(words, "_")
}

// ParseKeyValues extracts every key=value pair found in body, in order.
// It does not validate the overall structure: surrounding punctuation,
// whitespace and garbage between pairs are skipped.
func ParseKeyValues(body string) []KeyValue {
	matches := keyValueRegex.FindAllStringSubmatch(body, -1)

	pairs := make([]KeyValue, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, KeyValue{Key: m[1], Value: m[2]})
	}

	return pairs
}
