package forms

import "horeca-jobs-backend/internal/vacancies"

// Step keys shared with the materializers.
const (
	stepPosition         = "position"
	stepPositionCategory = "position_category"
	stepCuisines         = "cuisines"
	stepSalary           = "salary"
	stepSalaryType       = "salary_type"
	stepCity             = "city"
	stepRelocation       = "relocation"
	stepSkills           = "skills"
	stepExperience       = "experience"
	stepEducation        = "education"
	stepLanguages        = "languages"
	stepRequiredExp      = "required_experience"
	stepEmployment       = "employment_type"
	stepSchedule         = "work_schedule"
	stepDescription      = "description"
	stepResponsibilities = "responsibilities"
	stepIsAnonymous      = "is_anonymous"
	stepDuration         = "publication_duration"
	stepConfirm          = "confirm_publish"
)

// CategoryCook gates the cuisines step.
const CategoryCook = "повар"

// PositionCategories are the vacancy categories offered as a choice.
var PositionCategories = []string{
	CategoryCook, "официант", "бармен", "бариста", "администратор", "управляющий", "другое",
}

var (
	employmentTypes  = []string{"полная занятость", "частичная занятость", "сменный график", "стажировка"}
	workSchedules    = []string{"5/2", "2/2", "гибкий", "вахта"}
	experienceLevels = []string{"без опыта", "1-3 года", "3-5 лет", "5+ лет"}
	educationLevels  = []string{"не требуется", "среднее специальное", "высшее"}
)

// ResumeSteps is the fixed flow for creating a resume.
func ResumeSteps() []Step {
	return []Step{
		{Key: stepPosition, Prompt: "Какую должность вы ищете?", Validate: MinLength(2)},
		{Key: stepSalary, Prompt: "Желаемая зарплата? Введите число или «-», чтобы пропустить.", Validate: Optional(Number())},
		{
			Key:      stepSalaryType,
			Prompt:   "Зарплата до вычета налогов (gross) или на руки (net)?",
			Validate: Choice("gross", "net"),
			SkipIf:   func(d Draft) bool { return d.Field(stepSalary) == "" },
		},
		{Key: stepCity, Prompt: "В каком городе вы ищете работу?", Validate: MinLength(2)},
		{Key: stepRelocation, Prompt: "Готовы к переезду? (да/нет)", Validate: YesNo()},
		{Key: stepSkills, Prompt: "Перечислите навыки через запятую.", Validate: MinLength(2)},
		{Key: stepExperience, Prompt: "Опишите опыт работы: компания, должность, годы. «-», чтобы пропустить.", Validate: Optional(MinLength(5))},
		{Key: stepEducation, Prompt: "Образование? «-», чтобы пропустить.", Validate: Optional(MinLength(2))},
		{Key: stepLanguages, Prompt: "Какими языками владеете? «-», чтобы пропустить.", Validate: Optional(MinLength(2))},
		{Key: stepConfirm, Prompt: "Проверьте резюме и подтвердите публикацию."},
	}
}

// VacancySteps is the fixed flow for creating a vacancy.
func VacancySteps() []Step {
	return []Step{
		{Key: stepPositionCategory, Prompt: "Выберите категорию позиции.", Validate: Choice(PositionCategories...)},
		{Key: stepPosition, Prompt: "Название должности?", Validate: MinLength(2)},
		{
			Key:      stepCuisines,
			Prompt:   "Какие кухни? Перечислите через запятую.",
			Validate: MinLength(2),
			SkipIf:   func(d Draft) bool { return d.Field(stepPositionCategory) != CategoryCook },
		},
		{Key: stepSalary, Prompt: "Зарплата? Число или диапазон, например «от 50000 до 80000». «-», чтобы пропустить.", Validate: Optional(SalaryRange())},
		{Key: stepCity, Prompt: "Город?", Validate: MinLength(2)},
		{Key: stepRequiredExp, Prompt: "Требуемый опыт?", Validate: Choice(experienceLevels...)},
		{Key: stepEducation, Prompt: "Требуемое образование?", Validate: Choice(educationLevels...)},
		{Key: stepSkills, Prompt: "Требуемые навыки через запятую. «-», чтобы пропустить.", Validate: Optional(MinLength(2))},
		{Key: stepEmployment, Prompt: "Тип занятости?", Validate: Choice(employmentTypes...)},
		{Key: stepSchedule, Prompt: "График работы?", Validate: Choice(workSchedules...)},
		{Key: stepDescription, Prompt: "Опишите вакансию (минимум 30 символов).", Validate: MinLength(30)},
		{Key: stepResponsibilities, Prompt: "Обязанности? «-», чтобы пропустить.", Validate: Optional(MinLength(5))},
		{Key: stepIsAnonymous, Prompt: "Скрыть название заведения? (да/нет)", Validate: YesNo()},
		{Key: stepDuration, Prompt: "Срок публикации в днях?", Validate: Duration(vacancies.PublicationDurations)},
		{Key: stepConfirm, Prompt: "Проверьте вакансию и подтвердите публикацию."},
	}
}
