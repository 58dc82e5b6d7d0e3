package matching

import "strings"

// Sub-score weights. A dimension that is not comparable on both sides is
// excluded from the attainable total, so sparse records are not penalized.
const (
	weightPosition   = 30.0
	weightSkills     = 25.0
	weightLocation   = 15.0
	weightSalary     = 15.0
	weightExperience = 15.0
)

// Engine scores resumes against vacancies. The zero value is not usable;
// construct with NewEngine.
type Engine struct {
	scale ExperienceScale
}

// NewEngine builds an Engine. A nil scale falls back to the default.
func NewEngine(scale ExperienceScale) *Engine {
	if len(scale) == 0 {
		scale = DefaultExperienceScale()
	}
	return &Engine{scale: scale}
}

// Score computes a deterministic [0,100] compatibility score between one
// resume and one vacancy. It never fails; missing data on either side makes
// the affected dimension neutral.
func (e *Engine) Score(resume ResumeProfile, vacancy VacancyProfile) Recommendation {
	var earned, possible float64
	details := MatchDetails{}

	if resume.Position != "" && vacancy.Position != "" {
		possible += weightPosition
		if positionsMatch(resume.Position, vacancy.Position) {
			earned += weightPosition
			details.PositionMatch = true
		}
	}

	// Blank entries fold away, so the required set can be empty even when the
	// slice is not; an empty set makes the dimension non-comparable.
	if required := uniqueFold(vacancy.RequiredSkills); len(resume.Skills) > 0 && len(required) > 0 {
		possible += weightSkills
		matched := intersectSkills(resume.Skills, vacancy.RequiredSkills)
		earned += weightSkills * float64(len(matched)) / float64(len(required))
		details.SkillsMatched = matched
	}

	if resume.City != "" && vacancy.City != "" {
		possible += weightLocation
		if strings.EqualFold(strings.TrimSpace(resume.City), strings.TrimSpace(vacancy.City)) || resume.ReadyToRelocate {
			earned += weightLocation
			details.LocationMatch = true
		}
	}

	if resume.DesiredSalary != nil && (vacancy.SalaryMin != nil || vacancy.SalaryMax != nil) {
		possible += weightSalary
		if salaryCompatible(*resume.DesiredSalary, vacancy.SalaryMin, vacancy.SalaryMax) {
			earned += weightSalary
			details.SalaryCompatible = true
		}
	}

	required := e.scale.indexForLabel(vacancy.RequiredExperience)
	if required >= 0 && resume.ExperienceYears != nil {
		possible += weightExperience
		if e.scale.indexForYears(*resume.ExperienceYears) >= required {
			earned += weightExperience
			details.ExperienceSufficient = true
		}
	}

	if possible <= 0 {
		return Recommendation{ID: vacancy.ID, Score: 0, Details: details}
	}

	score := earned / possible * 100.0
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Recommendation{ID: vacancy.ID, Score: score, Details: details}
}

func positionsMatch(a, b string) bool {
	left := strings.ToLower(strings.TrimSpace(a))
	right := strings.ToLower(strings.TrimSpace(b))
	if left == "" || right == "" {
		return false
	}
	return left == right || strings.Contains(left, right) || strings.Contains(right, left)
}

// salaryCompatible reports whether the ask fits the posted band. An ask below
// salary_min still fits: the employer simply pays more than requested.
func salaryCompatible(desired int64, min, max *int64) bool {
	if max != nil && desired > *max {
		return false
	}
	return true
}

// intersectSkills returns resume skills present in the required set,
// case-insensitive, in required-set order.
func intersectSkills(have, want []string) []string {
	haveSet := make(map[string]struct{}, len(have))
	for _, s := range have {
		key := strings.ToLower(strings.TrimSpace(s))
		if key != "" {
			haveSet[key] = struct{}{}
		}
	}
	var matched []string
	seen := make(map[string]struct{}, len(want))
	for _, s := range want {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := haveSet[key]; ok {
			matched = append(matched, strings.TrimSpace(s))
		}
	}
	return matched
}

func uniqueFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
