package domain

import (
	"fmt"
	"math"
)

// OptionResult is one row of the results view.
type OptionResult struct {
	Index   int
	Label   string
	Count   int
	Percent int
	Phrase  string
}

// Results lists every option in its original order with its count and its
// share of the total, rounded to the nearest integer.
func Results(options []string, t Tally) []OptionResult {
	total := t.Total()
	results := make([]OptionResult, 0, len(options))
	for i, label := range options {
		count := t.Count(i)
		results = append(results, OptionResult{
			Index:   i,
			Label:   label,
			Count:   count,
			Percent: Percentage(count, total),
			Phrase:  VotePhrase(count),
		})
	}
	return results
}

// Percentage returns round(count/total*100), or 0 when there are no votes.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// VotePhrase pluralizes a vote count: "1 vote", "0 votes", "2 votes".
func VotePhrase(count int) string {
	if count == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", count)
}
