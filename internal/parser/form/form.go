package form

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

func Unmarshal(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(target)}
	}
	return unmarshalStruct(input, val.Elem(), "")
}

// unmarshalStruct fills v from input. Nested struct fields are addressed
// with a dotted prefix, e.g. "contact.telephone".
func unmarshalStruct(input url.Values, v reflect.Value, prefix string) error {
	ttype := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := ttype.Field(i)
		fieldName := field.Tag.Get("form")
		if fieldName == "" {
			continue
		}
		key := prefix + fieldName
		fieldVal := v.Field(i)

		if field.Type == uuidType {
			value, exists := input[key]
			if !exists || len(value) == 0 || value[0] == "" {
				continue
			}
			id, err := uuid.Parse(value[0])
			if err != nil {
				return err
			}
			fieldVal.Set(reflect.ValueOf(id))
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := unmarshalStruct(input, fieldVal, key+"."); err != nil {
				return err
			}
			continue
		}

		value, exists := input[key]
		if !exists || len(value) == 0 {
			continue
		}
		// NOTE: Take only the first value, except for slices.
		fieldValRaw := value[0]
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(fieldValRaw)
		case reflect.Bool:
			boolValue := strings.ToLower(fieldValRaw) == "true"
			fieldVal.SetBool(boolValue)
		case reflect.Int:
			if fieldValRaw == "" {
				continue
			}
			intValue, err := strconv.Atoi(fieldValRaw)
			if err != nil {
				return err
			}
			fieldVal.SetInt(int64(intValue))
		case reflect.Float64:
			if fieldValRaw == "" {
				continue
			}
			floatValue, err := strconv.ParseFloat(fieldValRaw, 64)
			if err != nil {
				return err
			}
			fieldVal.SetFloat(floatValue)
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				fieldVal.Set(reflect.ValueOf(append([]string(nil), value...)))
			}
		}
	}
	return nil
}

type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}
