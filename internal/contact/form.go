package contact

// SubmitResult — итог попытки отправки.
//
// При OK == true заполнен Snapshot, при OK == false — Errors.
type SubmitResult struct {
	OK       bool             `json:"ok"`
	Snapshot *FieldSet        `json:"snapshot,omitempty"`
	Errors   ValidationErrors `json:"errors,omitempty"`
}

// Submit проверяет FieldSet и, если ошибок нет, возвращает снимок.
// Снимок хранит обрезанные значения, то есть ровно то, что прошло проверку.
func Submit(fs FieldSet) SubmitResult {
	errs := Validate(fs)
	if len(errs) > 0 {
		return SubmitResult{OK: false, Errors: errs}
	}
	snapshot := fs.Normalize()
	return SubmitResult{OK: true, Snapshot: &snapshot}
}

// Form — состояние одной контактной формы: поля, ошибки, отправленный снимок.
//
// Form не потокобезопасна: её владелец (SessionStore или модель TUI)
// обрабатывает события по одному.
type Form struct {
	fields   FieldSet
	errors   ValidationErrors
	touched  map[Field]bool
	snapshot *FieldSet
}

// NewForm создаёт форму с пустыми полями.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Set записывает значение поля (последняя запись выигрывает)
// и сразу пересчитывает ошибки.
func (f *Form) Set(field Field, value string) error {
	next, err := f.fields.With(field, value)
	if err != nil {
		return err
	}
	f.fields = next
	f.touched[field] = true
	f.errors = Validate(f.fields)
	return nil
}

// SetAll заменяет все поля разом, как при отправке HTML-формы целиком.
func (f *Form) SetAll(fs FieldSet) {
	f.fields = fs
	for _, field := range Fields {
		f.touched[field] = true
	}
	f.errors = Validate(f.fields)
}

// Submit пытается отправить текущие поля.
//
// Успех: поля сбрасываются, снимок заменяется целиком.
// Неудача: поля не меняются, все поля считаются затронутыми, снимок прежний.
func (f *Form) Submit() SubmitResult {
	res := Submit(f.fields)
	if !res.OK {
		for _, field := range Fields {
			f.touched[field] = true
		}
		f.errors = Validate(f.fields)
		return res
	}

	snapshot := *res.Snapshot
	f.snapshot = &snapshot
	f.fields = FieldSet{}
	f.touched = map[Field]bool{}
	f.errors = Validate(f.fields)
	return res
}

// Reset возвращает форму в начальное состояние, включая снимок.
func (f *Form) Reset() {
	f.fields = FieldSet{}
	f.touched = map[Field]bool{}
	f.snapshot = nil
	f.errors = Validate(f.fields)
}

// Fields возвращает текущие значения.
func (f *Form) Fields() FieldSet { return f.fields }

// Errors возвращает все текущие ошибки, включая поля, которых
// пользователь ещё не касался.
func (f *Form) Errors() ValidationErrors {
	out := make(ValidationErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// VisibleErrors возвращает ошибки только затронутых полей.
func (f *Form) VisibleErrors() ValidationErrors {
	out := ValidationErrors{}
	for k, v := range f.errors {
		if f.touched[k] {
			out[k] = v
		}
	}
	return out
}

// Snapshot возвращает последний успешно отправленный FieldSet.
func (f *Form) Snapshot() (FieldSet, bool) {
	if f.snapshot == nil {
		return FieldSet{}, false
	}
	return *f.snapshot, true
}

// View строит отображение текущего состояния.
func (f *Form) View() View {
	return Project(f.fields, f.VisibleErrors(), f.snapshot)
}
