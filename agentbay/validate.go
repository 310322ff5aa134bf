package agentbay

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const tagName = "validate"

var defaultValidator = &paramValidator{}

type paramValidator struct {
	once     sync.Once
	validate *validator.Validate
}

// Validate 校验参数，失败时返回包装了 ErrInvalidParameter 的错误。
func (v *paramValidator) Validate(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.Validate(value.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.Validate(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	case reflect.Struct:
		v.lazyInit()
		if err := v.validate.Struct(obj); err != nil {
			return invalidParameter("%s", describeValidationError(err))
		}
	}
	return nil
}

// Var 使用 tag 校验单个值。
func (v *paramValidator) Var(field interface{}, tag string) error {
	v.lazyInit()
	return v.validate.Var(field, tag)
}

// lazyInit 延迟初始化
func (v *paramValidator) lazyInit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName(tagName)
		v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.validate.RegisterValidation("nowildcard", func(fl validator.FieldLevel) bool {
			return !containsWildcard(fl.Field().String())
		})
		nonblank := func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		}
		_ = v.validate.RegisterValidation("nonblank", nonblank)
		_ = v.validate.RegisterValidation("labelkey", nonblank)
	})
}

func containsWildcard(path string) bool {
	return strings.ContainsAny(path, "*?[]")
}

func describeValidationError(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	fe := errs[0]
	switch fe.Tag() {
	case "nowildcard":
		return fe.Namespace() + ": wildcard patterns are not supported in " + fe.Field() + ", got " + quote(fe.Value())
	case "oneof":
		return fe.Namespace() + ": must be one of [" + fe.Param() + "], got " + quote(fe.Value())
	case "required":
		return fe.Namespace() + ": is required"
	}
	return fe.Error()
}

func quote(v interface{}) string {
	if s, ok := v.(string); ok {
		return `"` + s + `"`
	}
	return fmt.Sprint(v)
}
