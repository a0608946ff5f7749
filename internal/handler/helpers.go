package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"orcaobra/internal/apierror"
	"orcaobra/internal/calculo"
	"orcaobra/internal/infra"
	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal validates as its float value so min/gt tags work on money fields
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// Returns false after writing the error response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// paramUUID parses a path parameter; false means a 400 was written.
func paramUUID(c *gin.Context, nome string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(nome))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(nome+" inválido"))
		return uuid.Nil, false
	}
	return id, true
}

func paramAno(c *gin.Context) (int, bool) {
	ano, err := strconv.Atoi(c.Param("ano"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ano inválido"))
		return 0, false
	}
	return ano, true
}

// responderErro maps service and engine errors to HTTP statuses. Anything
// unrecognized goes to the ErrorHandler middleware as a 500.
func responderErro(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRevisaoNaoEncontrada), errors.Is(err, service.ErrItemNaoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, calculo.ErrConfiguracao), errors.Is(err, calculo.ErrParametroInvalido):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, calculo.ErrValorInvalido), errors.Is(err, service.ErrEntradaInvalida):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable, apierror.New("ERP indisponível, tente mais tarde"))
	default:
		_ = c.Error(err)
	}
}

// enviarArquivo renders into memory first so a rendering error can still
// be answered as JSON.
func enviarArquivo(c *gin.Context, contentType, nome string, render func(w io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		responderErro(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
