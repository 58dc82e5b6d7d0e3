// Package present renders entities into the text blocks the bot and the
// web client show. Rendering is pure: no storage, no side effects.
package present

import (
	"fmt"
	"strings"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/vacancies"
)

// PreviewRuneLimit caps free-text previews in list cards.
const PreviewRuneLimit = 120

// Nav describes the pagination controls around a list page.
type Nav struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
}

func (n Nav) Label() string {
	return fmt.Sprintf("стр. %d из %d", n.Page, n.Pages)
}

// Presentation is a rendered message: text plus optional nav.
type Presentation struct {
	Text string `json:"text"`
	Nav  *Nav   `json:"nav,omitempty"`
}

// Cursor addresses one page of a list.
type Cursor struct {
	Offset  int
	PerPage int
}

func (c Cursor) perPage() int {
	if c.PerPage <= 0 {
		return 5
	}
	return c.PerPage
}

// Truncate cuts s to at most limit runes, appending "…" when anything was
// dropped. Safe on multi-byte text.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// VacancyDetail renders the full vacancy view. Absent optional fields are
// left out entirely rather than shown as blanks.
func VacancyDetail(v vacancies.Vacancy) Presentation {
	var b block
	b.line("📋 %s", v.Position)
	if v.PositionCategory != "" {
		b.line("Категория: %s", v.PositionCategory)
	}
	if salary := salaryBand(v.SalaryMin, v.SalaryMax); salary != "" {
		b.line("Зарплата: %s", salary)
	}
	if v.City != "" {
		b.line("Город: %s", v.City)
	}
	if v.RequiredExperience != "" {
		b.line("Опыт: %s", v.RequiredExperience)
	}
	if v.RequiredEducation != "" {
		b.line("Образование: %s", v.RequiredEducation)
	}
	if len(v.RequiredSkills) > 0 {
		b.line("Навыки: %s", strings.Join(v.RequiredSkills, ", "))
	}
	if len(v.Cuisines) > 0 {
		b.line("Кухни: %s", strings.Join(v.Cuisines, ", "))
	}
	if v.EmploymentType != "" {
		b.line("Занятость: %s", v.EmploymentType)
	}
	if v.WorkSchedule != "" {
		b.line("График: %s", v.WorkSchedule)
	}
	if v.Description != "" {
		b.blank()
		b.line("%s", v.Description)
	}
	if v.Responsibilities != "" {
		b.blank()
		b.line("Обязанности: %s", v.Responsibilities)
	}
	b.blank()
	b.line("%s · %s", ViewsPhrase(v.ViewsCount), ResponsesPhrase(v.ResponsesCount))
	if v.ExpiresAt != nil {
		b.line("Активна до %s", v.ExpiresAt.Format("02.01.2006"))
	}
	return Presentation{Text: b.String()}
}

// ResumeDetail renders the full resume view.
func ResumeDetail(r resumes.Resume) Presentation {
	var b block
	b.line("👤 %s", r.Position)
	if r.DesiredSalary != nil {
		b.line("Зарплата: от %d ₽%s", *r.DesiredSalary, salaryTypeSuffix(r.SalaryType))
	}
	if r.City != "" {
		if r.ReadyToRelocate {
			b.line("Город: %s (готов к переезду)", r.City)
		} else {
			b.line("Город: %s", r.City)
		}
	}
	if r.TotalExperienceYears != nil {
		b.line("Опыт: %s", YearsPhrase(int64(*r.TotalExperienceYears)))
	}
	if len(r.Skills) > 0 {
		b.line("Навыки: %s", strings.Join(r.Skills, ", "))
	}
	for _, exp := range r.Experience {
		b.line("— %s", experienceLine(exp))
	}
	if len(r.Education) > 0 {
		b.line("Образование: %s", strings.Join(r.Education, "; "))
	}
	if len(r.Languages) > 0 {
		b.line("Языки: %s", strings.Join(r.Languages, ", "))
	}
	b.blank()
	b.line("%s · %s", ViewsPhrase(r.ViewsCount), ResponsesPhrase(r.ResponsesCount))
	return Presentation{Text: b.String()}
}

// VacancyCard renders the one-block list entry for a vacancy.
func VacancyCard(v vacancies.Vacancy) string {
	var b block
	b.line("📋 %s", v.Position)
	parts := make([]string, 0, 3)
	if v.City != "" {
		parts = append(parts, v.City)
	}
	if salary := salaryBand(v.SalaryMin, v.SalaryMax); salary != "" {
		parts = append(parts, salary)
	}
	if len(parts) > 0 {
		b.line("%s", strings.Join(parts, " · "))
	}
	if v.Description != "" {
		b.line("%s", Truncate(v.Description, PreviewRuneLimit))
	}
	return b.String()
}

// ResumeCard renders the one-block list entry for a resume.
func ResumeCard(r resumes.Resume) string {
	var b block
	b.line("👤 %s", r.Position)
	parts := make([]string, 0, 3)
	if r.City != "" {
		parts = append(parts, r.City)
	}
	if r.DesiredSalary != nil {
		parts = append(parts, fmt.Sprintf("от %d ₽", *r.DesiredSalary))
	}
	if len(parts) > 0 {
		b.line("%s", strings.Join(parts, " · "))
	}
	if len(r.Skills) > 0 {
		b.line("%s", Truncate(strings.Join(r.Skills, ", "), PreviewRuneLimit))
	}
	return b.String()
}

// List pages through pre-rendered cards and attaches nav descriptors.
// An out-of-range offset clamps to the last page.
func List(cards []string, cursor Cursor) Presentation {
	perPage := cursor.perPage()
	if len(cards) == 0 {
		return Presentation{Text: "Ничего не найдено.", Nav: &Nav{Page: 1, Pages: 1}}
	}

	pages := (len(cards) + perPage - 1) / perPage
	page := cursor.Offset/perPage + 1
	if page > pages {
		page = pages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(cards) {
		end = len(cards)
	}

	nav := &Nav{
		Page:    page,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
	text := strings.Join(cards[start:end], "\n\n") + "\n\n" + nav.Label()
	return Presentation{Text: text, Nav: nav}
}

type block struct {
	lines []string
}

func (b *block) line(format string, args ...interface{}) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *block) blank() {
	if len(b.lines) > 0 && b.lines[len(b.lines)-1] != "" {
		b.lines = append(b.lines, "")
	}
}

func (b *block) String() string {
	return strings.Join(b.lines, "\n")
}

func salaryBand(min, max *int64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("от %d до %d ₽", *min, *max)
	case min != nil:
		return fmt.Sprintf("от %d ₽", *min)
	case max != nil:
		return fmt.Sprintf("до %d ₽", *max)
	default:
		return ""
	}
}

func salaryTypeSuffix(t resumes.SalaryType) string {
	switch t {
	case resumes.SalaryNet:
		return " на руки"
	case resumes.SalaryGross:
		return " до вычета"
	default:
		return ""
	}
}

func experienceLine(exp resumes.WorkExperience) string {
	parts := make([]string, 0, 3)
	if exp.Position != "" {
		parts = append(parts, exp.Position)
	}
	if exp.Company != "" {
		parts = append(parts, exp.Company)
	}
	if exp.Start != "" {
		span := exp.Start
		if exp.End != "" {
			span += "–" + exp.End
		}
		parts = append(parts, span)
	}
	return strings.Join(parts, ", ")
}
