package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"hospital-management-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware catches panics from handlers, logs them and returns a
// 500 instead of letting the connection die. Stack traces stay in the logs,
// never in the response body.
type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.WithFields(logrus.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"panic":  fmt.Sprintf("%v", rec),
				}).Errorf("Recovered from panic: %s", debug.Stack())
				response.InternalServerError(w, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
