package recommendation

import (
	"fmt"
	"strings"
)

// ReadStatus is the closed form of the free-text status strings stored on
// books and shelf entries. Parse at the boundary, compare on the variant.
type ReadStatus int

const (
	StatusUnknown ReadStatus = iota
	StatusRead
	StatusReading
	StatusWantToRead
)

// ParseReadStatus is deliberately tolerant: legacy clients stored display
// strings ("Read", "In Progress", "Want to Read") while newer rows carry the
// enum names. Anything unrecognized parses to StatusUnknown.
func ParseReadStatus(raw string) ReadStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "read":
		return StatusRead
	case "reading", "in progress", "in-progress", "in_progress":
		return StatusReading
	case "want_to_read", "want to read", "want-to-read", "to read", "to_read":
		return StatusWantToRead
	default:
		return StatusUnknown
	}
}

func (s ReadStatus) String() string {
	switch s {
	case StatusRead:
		return "READ"
	case StatusReading:
		return "READING"
	case StatusWantToRead:
		return "WANT_TO_READ"
	default:
		return "UNKNOWN"
	}
}

// IsReadOrReading reports whether the status counts as reading signal for
// genre weighting.
func (s ReadStatus) IsReadOrReading() bool {
	return s == StatusRead || s == StatusReading
}

// Strategy labels the reasoning path that produced a recommendation.
type Strategy string

const (
	StrategyGenre    Strategy = "GENRE"
	StrategyRating   Strategy = "RATING"
	StrategyPopular  Strategy = "POPULAR"
	StrategyFallback Strategy = "FALLBACK"
)

// FeedbackKind is a validated thumbs-up/down value.
type FeedbackKind string

const (
	FeedbackUp   FeedbackKind = "UP"
	FeedbackDown FeedbackKind = "DOWN"
)

// ParseFeedbackKind trims and uppercases the raw value and accepts exactly
// UP or DOWN.
func ParseFeedbackKind(raw string) (FeedbackKind, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch FeedbackKind(v) {
	case FeedbackUp:
		return FeedbackUp, nil
	case FeedbackDown:
		return FeedbackDown, nil
	default:
		return "", fmt.Errorf("Feedback must be 'UP' or 'DOWN'")
	}
}
