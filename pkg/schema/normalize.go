package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// 上游常见的缺失值占位符
var missingMarkers = map[string]bool{
	"":   true,
	"-":  true,
	"--": true,
	"—":  true,
}

func isMissingMarker(v any) bool {
	s, ok := v.(string)
	if !ok {
		return v == nil
	}
	return missingMarkers[strings.TrimSpace(s)]
}

// Normalize 将翻译后的原始记录规范化为类型化记录
//
// 必填字段缺失或无法转换为声明类型时整行被拒绝，返回 *ValidationError；
// 可选字段转换失败时原样透传（包括缺失值占位符），不影响整行。
func Normalize(row RawRow, ds *DataSchema) (Record, error) {
	values := make(map[string]any, len(ds.FieldOrder))

	for _, fieldName := range ds.FieldOrder {
		fieldDef := ds.Fields[fieldName]
		raw, exists := row[fieldName]

		if !exists || isMissingMarker(raw) {
			if fieldDef.Required {
				return Record{}, NewValidationError(ErrRequiredFieldMissing, fieldName, "required field missing")
			}
			if exists {
				// 可选字段的缺失值占位符原样保留
				values[fieldName] = raw
			}
			continue
		}

		coerced, err := coerceValue(raw, fieldDef.Type)
		if err != nil {
			if fieldDef.Required {
				return Record{}, NewValidationError(ErrCoercionFailed, fieldName,
					fmt.Sprintf("cannot coerce %v to %s: %v", raw, fieldDef.Type, err))
			}
			values[fieldName] = raw
			continue
		}

		values[fieldName] = coerced
	}

	return Record{Schema: ds, Values: values}, nil
}

// coerceValue 将松散类型的值转换为声明的字段类型
func coerceValue(v any, t FieldType) (any, error) {
	switch t {
	case FieldTypeAny:
		return v, nil
	case FieldTypeString:
		return coerceString(v)
	case FieldTypeInt:
		return coerceInt(v)
	case FieldTypeFloat64:
		return coerceFloat(v)
	case FieldTypeDate:
		return coerceDate(v)
	default:
		return nil, fmt.Errorf("unknown field type %d", t)
	}
}

func coerceString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", fmt.Errorf("unsupported string source %T", v)
	}
}

func coerceInt(v any) (int64, error) {
	switch val := v.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("value %v is not integral", val)
		}
		return int64(val), nil
	case json.Number:
		return coerceIntString(val.String())
	case string:
		return coerceIntString(val)
	default:
		return 0, fmt.Errorf("unsupported int source %T", v)
	}
}

func coerceIntString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("value %q is not integral", s)
	}
	return int64(f), nil
}

func coerceFloat(v any) (float64, error) {
	switch val := v.(type) {
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case json.Number:
		return strconv.ParseFloat(val.String(), 64)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, fmt.Errorf("unsupported float source %T", v)
	}
}

// 日期字段接受的字符串布局
var dateLayouts = []string{"2006-01-02", "20060102"}

func coerceDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	case json.Number:
		return coerceDate(val.String())
	default:
		return time.Time{}, fmt.Errorf("unsupported date source %T", v)
	}
}
