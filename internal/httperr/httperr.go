package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

var kindStatus = map[Kind]int{
	KindAlreadyExists:      http.StatusConflict,
	KindNotFound:           http.StatusNotFound,
	KindInvalidInput:       http.StatusBadRequest,
	KindIllegalTransition:  http.StatusUnprocessableEntity,
	KindSlotConflict:       http.StatusConflict,
	KindBackendUnavailable: http.StatusServiceUnavailable,
}

var kindMessage = map[Kind]string{
	KindAlreadyExists:      "Registro já cadastrado.",
	KindNotFound:           "Registro não encontrado.",
	KindInvalidInput:       "Dados inválidos.",
	KindIllegalTransition:  "Alteração de status não permitida.",
	KindSlotConflict:       "Conflito de horário.",
	KindBackendUnavailable: "Serviço temporariamente indisponível. Verifique o estado antes de tentar novamente.",
}

// StatusFor returns the HTTP status for a kind; unknown kinds are 500.
func StatusFor(kind Kind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// FromError renders err. Business errors keep their code and kind; anything
// else is logged and reported as an internal error.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		if be.Kind == KindBackendUnavailable {
			log.Warn().Err(err).Str("path", c.FullPath()).Msg("backend unavailable")
		}
		c.JSON(StatusFor(be.Kind), HTTPError{
			Code:    be.Code,
			Kind:    be.Kind,
			Message: kindMessage[be.Kind],
		})
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	Internal(c, "internal_error", "Erro interno.")
}

func BadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, HTTPError{Code: code, Kind: KindInvalidInput, Message: message})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}
