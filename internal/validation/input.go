package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinNameLength           = 2
	MaxNameLength           = 100
	MinTitleLength          = 3
	MaxTitleLength          = 200
	MinDescriptionLength    = 10
	MaxDescriptionLength    = 1000
	MinConcernDescription   = 10
	MaxConcernDescription   = 2000
	MaxLocationLength       = 200
	MaxBioLength            = 1000
	MaxContactInfoLength    = 200
	MinMessageLength        = 1
	MaxMessageLength        = 5000
	MinPrice                = 0.0
	MaxPrice                = 10000000.0
	MaxCollegeIDLength      = 50
)

var phoneRegex = regexp.MustCompile(`^[0-9+\-\s()]{7,20}$`)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateInstitutionalEmail проверяет, что email оканчивается на домен
// учебного заведения. Регистрация с посторонних доменов запрещена.
func ValidateInstitutionalEmail(email, domainSuffix string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	if domainSuffix != "" && !strings.HasSuffix(email, strings.ToLower(domainSuffix)) {
		return fmt.Errorf("email должен оканчиваться на %s", domainSuffix)
	}

	local := strings.SplitN(email, "@", 2)[0]
	if len(local) == 0 || len(local) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	return nil
}

// ValidateName проверяет имя пользователя.
func ValidateName(name string) error {
	if err := ValidateNonEmpty("имя", name); err != nil {
		return err
	}
	return ValidateLength("имя", strings.TrimSpace(name), MinNameLength, MaxNameLength)
}

// ValidatePhone проверяет телефон, если он указан.
func ValidatePhone(phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(strings.TrimSpace(*phone)) {
		return fmt.Errorf("телефон имеет некорректный формат")
	}
	return nil
}

// ValidateTitle проверяет заголовок объявления.
func ValidateTitle(title string) error {
	if err := ValidateNonEmpty("заголовок", title); err != nil {
		return err
	}
	return ValidateLength("заголовок", strings.TrimSpace(title), MinTitleLength, MaxTitleLength)
}

// ValidateDescription проверяет описание объявления.
func ValidateDescription(description string) error {
	if err := ValidateNonEmpty("описание", description); err != nil {
		return err
	}
	return ValidateLength("описание", strings.TrimSpace(description), MinDescriptionLength, MaxDescriptionLength)
}

// ValidateConcernDescription проверяет текст обращения: минимум 10 символов.
func ValidateConcernDescription(description string) error {
	if err := ValidateNonEmpty("описание обращения", description); err != nil {
		return err
	}
	return ValidateLength("описание обращения", strings.TrimSpace(description), MinConcernDescription, MaxConcernDescription)
}

// ValidatePrice проверяет цену, если она указана.
func ValidatePrice(fieldName string, price *float64) error {
	if price == nil {
		return nil
	}
	if *price < MinPrice {
		return fmt.Errorf("%s не может быть отрицательной", fieldName)
	}
	if *price > MaxPrice {
		return fmt.Errorf("%s не может превышать %.0f", fieldName, MaxPrice)
	}
	return nil
}

// ValidateEnum проверяет принадлежность значения закрытому множеству.
func ValidateEnum(fieldName, value string, valid map[string]struct{}) error {
	if _, ok := valid[value]; !ok {
		return fmt.Errorf("%s имеет недопустимое значение %q", fieldName, value)
	}
	return nil
}

// ValidateMessageContent проверяет содержимое сообщения.
func ValidateMessageContent(content string) error {
	if err := ValidateNonEmpty("сообщение", content); err != nil {
		return err
	}
	return ValidateLength("сообщение", strings.TrimSpace(content), MinMessageLength, MaxMessageLength)
}
