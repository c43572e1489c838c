package entities

import "fmt"

type RatingBand string

const (
	BandExcellent    RatingBand = "Excellent"
	BandGood         RatingBand = "Good"
	BandAverage      RatingBand = "Average"
	BandBelowAverage RatingBand = "Below Average"
)

// RatingScale describes the numeric scale the analysis service emits for a
// given deployment. The service has shipped both 1-5 and 1-10 votes, so band
// thresholds and the high-rating cutoff always derive from the configured
// maximum instead of being fixed at call sites.
type RatingScale struct {
	Max          int
	excellentMin int
	goodMin      int
	averageMin   int
}

func NewRatingScale(max int) (RatingScale, error) {
	switch max {
	case 5:
		return RatingScale{Max: 5, excellentMin: 4, goodMin: 3, averageMin: 2}, nil
	case 10:
		return RatingScale{Max: 10, excellentMin: 8, goodMin: 6, averageMin: 4}, nil
	default:
		return RatingScale{}, fmt.Errorf("unsupported rating scale: %d", max)
	}
}

func (s RatingScale) Band(rating int) RatingBand {
	switch {
	case rating >= s.excellentMin:
		return BandExcellent
	case rating >= s.goodMin:
		return BandGood
	case rating >= s.averageMin:
		return BandAverage
	default:
		return BandBelowAverage
	}
}

// IsHigh reports whether a rating counts as high-rated on the dashboard.
func (s RatingScale) IsHigh(rating int) bool {
	return rating >= s.excellentMin
}

// Label renders a rating with its divisor, e.g. "8/10".
func (s RatingScale) Label(rating int) string {
	return fmt.Sprintf("%d/%d", rating, s.Max)
}
