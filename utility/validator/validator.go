package validator

import (
	"errors"
	"net/http"

	"payledger/utility/appError"
	"payledger/utility/errorcode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validation "gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// CustomizeMessages ... Customize validation error messages
func CustomizeMessages(validator *validation.Validate) (ut.Translator, error) {
	translator := en.New()
	uni := ut.New(translator, translator)

	trans, found := uni.GetTranslator("en")
	if !found {
		return trans, appError.Err{ErrType: errorcode.SERVER_ERR, ErrCode: http.StatusInternalServerError, Err: errors.New("translator not found")}
	}

	if err := en_translations.RegisterDefaultTranslations(validator, trans); err != nil {
		return trans, appError.Err{ErrType: errorcode.SERVER_ERR, ErrCode: http.StatusInternalServerError, Err: err}
	}

	_ = validator.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validation.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})

	_ = validator.RegisterTranslation("gt", trans, func(ut ut.Translator) error {
		return ut.Add("gt", "{0} must be greater than zero", true)
	}, func(ut ut.Translator, fe validation.FieldError) string {
		t, _ := ut.T("gt", fe.Field())
		return t
	})

	return trans, nil
}

// TranslateErrors ... Flattens validator errors into field/message pairs for
// the response envelope
func TranslateErrors(err error, trans ut.Translator) []map[string]string {
	validationErrors := []map[string]string{}
	fieldErrors, ok := err.(validation.ValidationErrors)
	if !ok {
		return validationErrors
	}
	for _, fieldError := range fieldErrors {
		validationErrors = append(validationErrors, map[string]string{
			fieldError.Field(): fieldError.Translate(trans),
		})
	}
	return validationErrors
}
