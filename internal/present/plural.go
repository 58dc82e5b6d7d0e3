package present

import "fmt"

// Plural picks the Russian plural form for n: one ("год"), few ("года"),
// many ("лет"). 11 through 14 always take the many form regardless of the
// last digit.
func Plural(n int64, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	if mod100 := n % 100; mod100 >= 11 && mod100 <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

func countPhrase(n int64, one, few, many string) string {
	return fmt.Sprintf("%d %s", n, Plural(n, one, few, many))
}

// YearsPhrase renders an experience span, e.g. "3 года".
func YearsPhrase(n int64) string {
	return countPhrase(n, "год", "года", "лет")
}

// ResponsesPhrase renders a response count, e.g. "5 откликов".
func ResponsesPhrase(n int64) string {
	return countPhrase(n, "отклик", "отклика", "откликов")
}

// ViewsPhrase renders a view count, e.g. "21 просмотр".
func ViewsPhrase(n int64) string {
	return countPhrase(n, "просмотр", "просмотра", "просмотров")
}

// DaysPhrase renders a duration in days, e.g. "30 дней".
func DaysPhrase(n int64) string {
	return countPhrase(n, "день", "дня", "дней")
}
