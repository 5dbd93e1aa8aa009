package utils

import (
	"fmt"
	"reflect"
)

var ColumnTag = "db"

// StructTagValues lists the column names of a row struct in field order.
func StructTagValues(input any) []string {
	targetValue := reflect.ValueOf(input)
	if targetValue.Kind() == reflect.Ptr {
		targetValue = targetValue.Elem()
	}

	if targetValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	targetType := targetValue.Type()
	result := make([]string, 0, targetValue.NumField())

	for i := 0; i < targetValue.NumField(); i++ {
		field := targetType.Field(i)
		if field.PkgPath != "" {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, tagValue)
	}

	return result
}

// StructToMap maps column names to field values for squirrel SetMap.
func StructToMap(input any) map[string]any {
	result := make(map[string]any)

	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Ptr {
		itemValue = itemValue.Elem()
	}

	if itemValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	itemType := itemValue.Type()

	for i := 0; i < itemValue.NumField(); i++ {
		field := itemType.Field(i)
		if field.PkgPath != "" {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result[tagValue] = itemValue.Field(i).Interface()
	}

	return result
}

const columnPrefixFmt = "%s.%s"

func PrefixSliceOfStrings(prefix string, input []string) []string {
	out := make([]string, len(input))
	for i, v := range input {
		out[i] = fmt.Sprintf(columnPrefixFmt, prefix, v)
	}
	return out
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
