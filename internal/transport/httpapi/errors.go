package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
)

// statusClientClosedRequest - клиент закрыл соединение до ответа (nginx 499).
const statusClientClosedRequest = 499

// errorBody - тело ответа с ошибкой.
type errorBody struct {
	HTTPCode        int    `json:"httpCode"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailedMessage"`
}

// StatusFor сопоставляет вид ошибки HTTP-статусу.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingField,
		domain.KindDuplicateAssociation,
		domain.KindDuplicateName,
		domain.KindNoStockLeft,
		domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindCanceled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrIdempotencyHashMismatch), errors.Is(err, idempotency.ErrInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrIdempotencyKeyRequired):
		return http.StatusBadRequest
	}
	return StatusFor(domain.KindOf(err))
}

func encodeError(err error) (int, []byte) {
	status := errorStatus(err)
	detailed := err.Error()
	if status == http.StatusInternalServerError {
		// внутренности не отдаём наружу
		detailed = "unexpected error"
	}
	message := http.StatusText(status)
	if status == statusClientClosedRequest {
		message = "Client Closed Request"
	}
	body, _ := json.Marshal(errorBody{
		HTTPCode:        status,
		Message:         message,
		DetailedMessage: detailed,
	})
	return status, body
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := encodeError(err)

	entry := h.logger.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		_, body = encodeError(domain.WrapError(domain.KindUnexpected, err, "encode response"))
		status = http.StatusInternalServerError
	}
	writeRaw(w, status, body)
}
