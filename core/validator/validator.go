package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator 定义校验器接口
type Validator interface {
	// Struct 校验结构体
	Struct(s any) error
}

// Validate 全局校验器实例
var Validate Validator = New()

// validatorImpl 校验器实现，错误消息使用英文翻译
type validatorImpl struct {
	validator *validator.Validate
	trans     ut.Translator
}

// New 创建新的校验器实例
func New() Validator {
	v := &validatorImpl{validator: validator.New()}

	locale := en.New()
	uni := ut.New(locale, locale)
	if trans, found := uni.GetTranslator("en"); found {
		v.trans = trans
		_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
	}

	return v
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}

	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := &ValidationErrors{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if v.trans != nil {
			msg = fe.Translate(v.trans)
		}
		result.Fields = append(result.Fields, FieldError{
			Namespace: fe.Namespace(),
			Tag:       fe.Tag(),
			Value:     fe.Value(),
			Message:   msg,
		})
	}
	return result
}

// ValidationErrors 校验错误集合
type ValidationErrors struct {
	Fields []FieldError
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Namespace string
	Tag       string
	Value     any
	Message   string
}

// Error 返回以分号分隔的错误信息
func (ve *ValidationErrors) Error() string {
	messages := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// Has 检查是否存在指定字段（Namespace 后缀匹配）的错误
func (ve *ValidationErrors) Has(field string) bool {
	for _, f := range ve.Fields {
		if f.Namespace == field || strings.HasSuffix(f.Namespace, "."+field) {
			return true
		}
	}
	return false
}
