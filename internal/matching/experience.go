package matching

import "strings"

// ExperienceBucket is one rung of the ordered experience scale.
type ExperienceBucket struct {
	Key      string
	MinYears float64
	Labels   []string
}

// ExperienceScale orders buckets from least to most experience. Comparison is
// by bucket position, not by numeric subtraction.
type ExperienceScale []ExperienceBucket

// DefaultExperienceScale mirrors the scale used by the job boards this
// product imports listings from.
func DefaultExperienceScale() ExperienceScale {
	return ExperienceScale{
		{Key: "none", MinYears: 0, Labels: []string{"no experience", "none", "без опыта", "не требуется"}},
		{Key: "1-3", MinYears: 1, Labels: []string{"1-3 years", "1-3", "от 1 года до 3 лет", "от 1 до 3"}},
		{Key: "3-5", MinYears: 3, Labels: []string{"3-5 years", "3-5", "от 3 до 5 лет", "от 3 до 5"}},
		{Key: "5+", MinYears: 5, Labels: []string{"5+ years", "5+", "более 5 лет", "больше 5"}},
	}
}

// indexForLabel resolves a free-text requirement to a bucket index, -1 if the
// text matches no bucket.
func (s ExperienceScale) indexForLabel(raw string) int {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return -1
	}
	for i, bucket := range s {
		if strings.EqualFold(bucket.Key, needle) {
			return i
		}
		for _, label := range bucket.Labels {
			if strings.Contains(needle, strings.ToLower(label)) {
				return i
			}
		}
	}
	return -1
}

// indexForYears buckets a numeric total into the scale.
func (s ExperienceScale) indexForYears(years float64) int {
	idx := 0
	for i, bucket := range s {
		if years >= bucket.MinYears {
			idx = i
		}
	}
	return idx
}
