package agentbay

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// labelsTag 校验标签：不能为 nil 或空，键和值都不能为空白。
const labelsTag = "required,min=1,dive,keys,labelkey,endkeys,nonblank"

// validateLabels 使用 labelsTag 校验标签并转换为可读的错误信息。
func validateLabels(labels map[string]string) error {
	err := defaultValidator.Var(labels, labelsTag)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return invalidParameter("%s", err.Error())
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return invalidParameter("labels cannot be nil")
	case "min":
		return invalidParameter("labels cannot be empty")
	case "labelkey":
		return invalidParameter("label keys cannot be blank")
	case "nonblank":
		key := strings.TrimSuffix(strings.TrimPrefix(fe.Field(), "["), "]")
		return invalidParameter("label value for key %q cannot be blank", key)
	}
	return invalidParameter("%s", fe.Error())
}
