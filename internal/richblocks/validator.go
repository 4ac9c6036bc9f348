// Валидация тел запросов API редактора. Использует библиотеку go-playground/validator.
//
// Основные возможности:
//   - Проверка имени блока по реестру блоков.
//   - Проверка имени форматирования текста.
//   - Проверка идентификаторов полей и сессий.
package richblocks

import (
	"github.com/go-playground/validator"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator(reg *editor.Registry) *RequestValidator {
	v := validator.New()
	err := v.RegisterValidation("blockName", func(fl validator.FieldLevel) bool {
		_, ok := reg.ByName(fl.Field().String())
		return ok
	})
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("markName", markNameValidator)
	if err != nil {
		return nil
	}

	err = v.RegisterValidation("id", idValidator)
	if err != nil {
		return nil
	}
	return &RequestValidator{v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		_, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil
		}
		return err
	}
	return nil
}

func markNameValidator(fl validator.FieldLevel) bool {
	_, ok := edtypes.ParseMark(fl.Field().String())
	return ok
}

func idValidator(fl validator.FieldLevel) bool {
	return dao.ValidID(fl.Field().String())
}
