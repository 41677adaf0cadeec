package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/HarryYanarico/my-proyect/internal/apierror"
	"github.com/HarryYanarico/my-proyect/internal/apperror"
	"github.com/HarryYanarico/my-proyect/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as its float value so that gt=0 / min=0 work.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validate tags. On failure
// it writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidacion, "JSON inválido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidacion, "Parámetros inválidos"))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidacion, "Solicitud inválida"))
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

// paramID parses a uuid path parameter, answering 400 when malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidacion, "ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// responderError maps service failures onto HTTP statuses. Only messages
// carried by an *apperror.Error are shown to the client.
func responderError(c *gin.Context, err error) {
	msg := apperror.Mensaje(err)
	switch {
	case errors.Is(err, apperror.ErrValidation):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidacion, msg))
	case errors.Is(err, apperror.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.CodeNoEncontrado, msg))
	case errors.Is(err, apperror.ErrConflict):
		c.JSON(http.StatusConflict, apierror.New(apierror.CodeConflicto, msg))
	case errors.Is(err, apperror.ErrInconsistencia):
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("integridad: respuesta 500")
		c.JSON(http.StatusInternalServerError, apierror.Interno())
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.Interno())
	}
}
