// Package contact содержит контактную форму: набор полей, правила валидации,
// обработку отправки и проекцию состояния в то, что видит пользователь.
//
// Ядро (field.go, validate.go, form.go, view.go) не зависит ни от HTTP,
// ни от терминала: handler.go и internal/tui только вызывают его.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownField возвращается, когда имя поля не входит в FieldSet.
var ErrUnknownField = errors.New("unknown field")

// Field — имя поля формы в том виде, в каком оно приходит из HTML и JSON.
type Field string

const (
	FirstName Field = "firstName"
	LastName  Field = "lastName"
	Email     Field = "email"
	Message   Field = "message"
)

// Fields задаёт фиксированный порядок полей.
// В этом порядке выводятся ошибки, независимо от порядка ввода.
var Fields = []Field{FirstName, LastName, Email, Message}

// ParseField превращает строку в Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// FieldSet — текущие значения четырёх полей формы.
//
// Теги validate описывают правила; Validate запускает их через validator.
type FieldSet struct {
	FirstName string `json:"firstName" validate:"required,min=5"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message"`
}

// Get возвращает значение поля.
func (fs FieldSet) Get(f Field) (string, error) {
	switch f {
	case FirstName:
		return fs.FirstName, nil
	case LastName:
		return fs.LastName, nil
	case Email:
		return fs.Email, nil
	case Message:
		return fs.Message, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
}

// With возвращает копию FieldSet с новым значением одного поля.
func (fs FieldSet) With(f Field, value string) (FieldSet, error) {
	switch f {
	case FirstName:
		fs.FirstName = value
	case LastName:
		fs.LastName = value
	case Email:
		fs.Email = value
	case Message:
		fs.Message = value
	default:
		return fs, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return fs, nil
}

// Normalize приводит значения к виду, в котором они проверяются и сохраняются:
// невалидные байты UTF-8 заменяются на U+FFFD, по краям обрезаются пробелы
// и невидимые символы форматирования (U+200B, U+FEFF и т. п.).
// Строка только из таких символов становится пустой.
func (fs FieldSet) Normalize() FieldSet {
	return FieldSet{
		FirstName: normalize(fs.FirstName),
		LastName:  normalize(fs.LastName),
		Email:     normalize(fs.Email),
		Message:   normalize(fs.Message),
	}
}

func normalize(v string) string {
	return strings.TrimFunc(strings.ToValidUTF8(v, "\uFFFD"), isBlank)
}

// isBlank — пробел или невидимый символ категории Cf.
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Cf, r)
}
