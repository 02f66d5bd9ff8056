package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 공통 커스텀 태그. 도메인 전용 태그는 각 도메인에서 등록
var customTags = map[string]validator.Func{
	"isbncode": ValidateISBN,
}

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll registers the custom tags and reports fields by their JSON name
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	v.RegisterTagNameFunc(jsonFieldName)

	tags := make([]string, 0, len(customTags))
	for tag, fn := range customTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", tag, err)
		}
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	slog.Info("공통 Validator 등록 완료", "validators", strings.Join(tags, ","))
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
