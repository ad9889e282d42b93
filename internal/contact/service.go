package contact

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Service — слой бизнес-логики между HTTP и хранилищем:
// handler -> service -> store. Контекст запроса проходит через все слои.
type Service struct {
	store *SessionStore
	log   *zap.Logger
}

// NewService создаёт сервис поверх хранилища сессий.
func NewService(store *SessionStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// View возвращает отображение формы сессии.
func (s *Service) View(ctx context.Context, sessionID string) (View, error) {
	var v View
	err := s.store.Do(ctx, sessionID, func(f *Form) {
		v = f.View()
	})
	return v, err
}

// Input применяет ввод пользователя в одно поле.
func (s *Service) Input(ctx context.Context, sessionID string, field Field, value string) (View, error) {
	if _, err := ParseField(string(field)); err != nil {
		return View{}, err
	}

	var v View
	err := s.store.Do(ctx, sessionID, func(f *Form) {
		// Поле уже проверено выше, ошибки здесь не бывает.
		_ = f.Set(field, value)
		v = f.View()
	})
	return v, err
}

// Submit отправляет текущие поля сессии.
// Если fields не nil, они сначала заменяют все поля формы.
func (s *Service) Submit(ctx context.Context, sessionID string, fields *FieldSet) (SubmitResult, View, error) {
	var (
		res SubmitResult
		v   View
	)
	err := s.store.Do(ctx, sessionID, func(f *Form) {
		if fields != nil {
			f.SetAll(*fields)
		}
		res = f.Submit()
		v = f.View()
	})
	if err != nil {
		return SubmitResult{}, View{}, fmt.Errorf("submit: %w", err)
	}

	if res.OK {
		s.log.Debug("contact form submitted",
			zap.String("session", sessionID),
			zap.Bool("message", res.Snapshot.Message != ""))
	} else {
		failed := make([]string, 0, len(res.Errors))
		for _, fe := range res.Errors.Ordered() {
			failed = append(failed, string(fe.Field))
		}
		s.log.Debug("contact form rejected",
			zap.String("session", sessionID),
			zap.Strings("fields", failed))
	}
	return res, v, nil
}

// Reset возвращает форму сессии в начальное состояние: сессия удаляется
// целиком, следующее обращение с тем же id начнёт с пустой формы.
// Возвращает ErrSessionNotFound, если сессии нет.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	ok, err := s.store.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	s.log.Info("contact form reset", zap.String("session", sessionID))
	return nil
}
