package present

import (
	"strings"
	"testing"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/vacancies"
)

func TestPluralBuckets(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "год"},
		{2, "года"},
		{4, "года"},
		{5, "лет"},
		{10, "лет"},
		{11, "лет"},
		{12, "лет"},
		{14, "лет"},
		{21, "год"},
		{22, "года"},
		{25, "лет"},
		{100, "лет"},
		{101, "год"},
		{111, "лет"},
		{0, "лет"},
	}
	for _, tc := range cases {
		if got := Plural(tc.n, "год", "года", "лет"); got != tc.want {
			t.Errorf("Plural(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestResponsesPhrase(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "1 отклик"},
		{3, "3 отклика"},
		{7, "7 откликов"},
		{11, "11 откликов"},
		{121, "121 отклик"},
	}
	for _, tc := range cases {
		if got := ResponsesPhrase(tc.n); got != tc.want {
			t.Errorf("ResponsesPhrase(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("короткий текст", 120); got != "короткий текст" {
		t.Errorf("short text must pass through, got %q", got)
	}

	long := strings.Repeat("ж", 130)
	got := Truncate(long, 120)
	runes := []rune(got)
	if len(runes) != 120 {
		t.Fatalf("truncated length = %d runes, want 120", len(runes))
	}
	if runes[len(runes)-1] != '…' {
		t.Errorf("expected ellipsis marker, got %q", string(runes[len(runes)-1]))
	}
}

func TestVacancyDetailOmitsAbsentFields(t *testing.T) {
	p := VacancyDetail(vacancies.Vacancy{Position: "бариста"})

	for _, forbidden := range []string{"Зарплата", "Город", "Кухни", "Опыт", "Обязанности"} {
		if strings.Contains(p.Text, forbidden) {
			t.Errorf("detail must omit absent field %q:\n%s", forbidden, p.Text)
		}
	}
	if !strings.Contains(p.Text, "бариста") {
		t.Errorf("detail must contain the position:\n%s", p.Text)
	}
}

func TestVacancyDetailSalaryBand(t *testing.T) {
	min, max := int64(50000), int64(80000)
	p := VacancyDetail(vacancies.Vacancy{Position: "повар", SalaryMin: &min, SalaryMax: &max})
	if !strings.Contains(p.Text, "от 50000 до 80000 ₽") {
		t.Errorf("expected salary band in:\n%s", p.Text)
	}

	p = VacancyDetail(vacancies.Vacancy{Position: "повар", SalaryMin: &min})
	if !strings.Contains(p.Text, "от 50000 ₽") {
		t.Errorf("expected open-ended band in:\n%s", p.Text)
	}
}

func TestResumeDetailCounts(t *testing.T) {
	p := ResumeDetail(resumes.Resume{Position: "бариста", ViewsCount: 21, ResponsesCount: 2})
	if !strings.Contains(p.Text, "21 просмотр · 2 отклика") {
		t.Errorf("expected counters line in:\n%s", p.Text)
	}
}

func TestListPagination(t *testing.T) {
	cards := []string{"a", "b", "c", "d", "e", "f", "g"}

	p := List(cards, Cursor{Offset: 0, PerPage: 3})
	if p.Nav.Page != 1 || p.Nav.Pages != 3 {
		t.Fatalf("nav = %+v, want page 1 of 3", p.Nav)
	}
	if p.Nav.HasPrev || !p.Nav.HasNext {
		t.Errorf("first page nav = %+v", p.Nav)
	}
	if !strings.Contains(p.Text, "стр. 1 из 3") {
		t.Errorf("expected page label in:\n%s", p.Text)
	}

	p = List(cards, Cursor{Offset: 6, PerPage: 3})
	if p.Nav.Page != 3 || p.Nav.HasNext || !p.Nav.HasPrev {
		t.Errorf("last page nav = %+v", p.Nav)
	}
	if !strings.Contains(p.Text, "g") {
		t.Errorf("expected last card in:\n%s", p.Text)
	}

	p = List(cards, Cursor{Offset: 99, PerPage: 3})
	if p.Nav.Page != 3 {
		t.Errorf("out-of-range offset must clamp, nav = %+v", p.Nav)
	}
}

func TestListEmpty(t *testing.T) {
	p := List(nil, Cursor{})
	if p.Text != "Ничего не найдено." {
		t.Errorf("empty list text = %q", p.Text)
	}
	if p.Nav.HasPrev || p.Nav.HasNext {
		t.Errorf("empty list nav = %+v", p.Nav)
	}
}
