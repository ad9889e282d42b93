package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorPrefix добавляется к каждому сообщению об ошибке при выводе.
const ErrorPrefix = "Error: "

// validate — один экземпляр на пакет: validator кэширует разбор тегов
// и безопасен для параллельного использования.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ошибках нужны имена из json-тега (firstName), а не имена Go-полей.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationErrors — ошибки валидации по полям.
// Поле присутствует в карте только если оно сейчас не проходит правила.
type ValidationErrors map[Field]string

// FieldError — одна ошибка поля в фиксированном порядке вывода.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

// Ordered возвращает ошибки в порядке Fields.
func (e ValidationErrors) Ordered() []FieldError {
	out := make([]FieldError, 0, len(e))
	for _, f := range Fields {
		if msg, ok := e[f]; ok {
			out = append(out, FieldError{Field: f, Message: msg})
		}
	}
	return out
}

// Lines возвращает строки ошибок с префиксом "Error: ".
func (e ValidationErrors) Lines() []string {
	ordered := e.Ordered()
	out := make([]string, 0, len(ordered))
	for _, fe := range ordered {
		out = append(out, ErrorPrefix+fe.Message)
	}
	return out
}

// Validate проверяет FieldSet по фиксированному набору правил.
//
// Чистая функция: одинаковый вход всегда даёт одинаковый набор ошибок.
// Значения обрезаются по краям до проверки, поэтому строка из пробелов
// в обязательном поле считается пустой.
func Validate(fs FieldSet) ValidationErrors {
	errs := ValidationErrors{}

	err := validate.Struct(fs.Normalize())
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Struct получает значение FieldSet, InvalidValidationError здесь невозможна.
		panic(err)
	}

	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, seen := errs[f]; seen {
			continue
		}
		errs[f] = errorMessage(f, fe)
	}
	return errs
}

func errorMessage(f Field, fe validator.FieldError) string {
	// Для email пустое и некорректное значение дают один и тот же текст.
	if f == Email {
		return fmt.Sprintf("%s must be a valid email address.", f)
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required field.", f)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", f, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", f)
	default:
		return fmt.Sprintf("%s is invalid.", f)
	}
}
