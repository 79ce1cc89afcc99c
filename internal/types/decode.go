package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Decode maps loosely typed model output onto out. Numbers and booleans given
// as strings are converted, unparsable numbers become zero and bare strings
// are accepted where an ineffective keyword object is expected.
func Decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			termHook,
			lenientNumberHook,
		),
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode %T: %w", out, err)
	}
	return nil
}

var ineffectiveKeywordType = reflect.TypeOf(IneffectiveKeyword{})

func termHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != ineffectiveKeywordType {
		return data, nil
	}
	return map[string]any{"term": data}, nil
}

func lenientNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64:
	default:
		return data, nil
	}

	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(data.(string)), "%"))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, nil
	}
	return f, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks the struct tags of v.
func Validate(v any) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate.Struct(v)
}
