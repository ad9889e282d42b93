package contact

// View — всё, что видит пользователь: значения полей, строки ошибок
// и блок отправленных данных.
type View struct {
	Values  FieldSet    `json:"values"`
	Errors  []ErrorLine `json:"errors"`
	Display *Display    `json:"display,omitempty"`
}

// ErrorLine — одна строка ошибки, уже с префиксом "Error: ".
type ErrorLine struct {
	Field Field  `json:"field"`
	Text  string `json:"text"`
}

// Display — отправленные данные.
// Message равен nil, если сообщение не было отправлено.
type Display struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Message   *string `json:"message,omitempty"`
}

// Project отображает состояние формы в View. Чистая функция.
func Project(values FieldSet, errs ValidationErrors, snapshot *FieldSet) View {
	v := View{
		Values: values,
		Errors: make([]ErrorLine, 0, len(errs)),
	}

	for _, fe := range errs.Ordered() {
		v.Errors = append(v.Errors, ErrorLine{Field: fe.Field, Text: ErrorPrefix + fe.Message})
	}

	if snapshot != nil {
		d := &Display{
			FirstName: snapshot.FirstName,
			LastName:  snapshot.LastName,
			Email:     snapshot.Email,
		}
		if snapshot.Message != "" {
			msg := snapshot.Message
			d.Message = &msg
		}
		v.Display = d
	}
	return v
}
