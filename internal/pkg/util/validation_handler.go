package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// 报错时使用 json 字段名，与请求体保持一致
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateDTO 只返回第一个失败字段
func ValidateDTO(dto any) error {
	err := validatorInstance().Struct(dto)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}
	first := vErrs[0]
	if first.Param() != "" {
		return fmt.Errorf("字段 [%s] 校验失败，规则 [%s=%s]", first.Field(), first.Tag(), first.Param())
	}
	return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]", first.Field(), first.Tag())
}
