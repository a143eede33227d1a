package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"docreport/internal/compliance"
	"docreport/internal/model"
)

var validate = newValidator()

// newValidator reports fields by their JSON names and knows the "period" tag (YYYY-MM).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return compliance.ValidPeriod(fl.Field().String())
	})
	return v
}

type consultRequest struct {
	Period string `json:"competencia" validate:"required,period"`
}

type previewRequest struct {
	Project  string `json:"projeto" validate:"required"`
	Provider string `json:"prestador" validate:"required"`
	Contract string `json:"contrato" validate:"required"`
	Period   string `json:"competencia" validate:"required,period"`
}

func (r previewRequest) key() model.ContractKey {
	return model.ContractKey{Project: r.Project, Provider: r.Provider, Contract: r.Contract}
}

type sendRequest struct {
	Dispatches []model.Dispatch `json:"envios" validate:"required,min=1,dive"`
}

// validationMessage renders validator errors as "field: reason" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fieldPath(e), reason(e)))
	}
	return strings.Join(parts, "; ")
}

// fieldPath drops the root struct name from the namespace, e.g. "envios[0].competencia".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "period":
		return "must be a period in YYYY-MM format"
	case "min":
		return "must have at least " + e.Param() + " item(s)"
	default:
		return "is invalid"
	}
}
