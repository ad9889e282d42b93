// Package middleware содержит HTTP-middleware: функции-обёртки над http.Handler,
// которые добавляют общий функционал (логирование, авторизация, заголовки)
// вокруг основного обработчика без изменения его кода.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// LoggingMiddleware пишет одну запись в лог на каждый запрос
// после того, как основной обработчик завершил работу.
//
// В duration входит вся обработка запроса обработчиком и middleware внутри цепочки.
func LoggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// обработчик ничего не записал — net/http ответит 200
				status = http.StatusOK
			}
			log.Info("request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// BasicAuthMiddleware защищает эндпоинт HTTP Basic Auth.
//
// Если аутентификация не пройдена, middleware выставляет WWW-Authenticate,
// возвращает 401 Unauthorized и НЕ вызывает next.
func BasicAuthMiddleware(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, pass, ok := r.BasicAuth()
			if !ok || !equal(name, username) || !equal(pass, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// equal сравнивает строки за время, не зависящее от совпавшего префикса.
func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// JSONHeaderMiddleware проставляет заголовок Content-Type для JSON-ответов.
//
// Заголовки нужно выставлять ДО записи тела ответа (до w.Write / Encode).
func JSONHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
