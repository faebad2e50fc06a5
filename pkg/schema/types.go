package schema

import (
	"encoding/json"
	"time"
)

// FieldType 支持的字段类型
type FieldType int

const (
	FieldTypeString FieldType = iota
	FieldTypeInt
	FieldTypeFloat64
	FieldTypeDate
	// FieldTypeAny 任意类型，值原样透传不做转换
	// 用于上游以数字或字符串混合返回的财务指标字段
	FieldTypeAny
)

// String returns the string representation of FieldType
func (ft FieldType) String() string {
	switch ft {
	case FieldTypeString:
		return "string"
	case FieldTypeInt:
		return "int"
	case FieldTypeFloat64:
		return "float64"
	case FieldTypeDate:
		return "date"
	case FieldTypeAny:
		return "any"
	default:
		return "unknown"
	}
}

// FieldDefinition 字段定义
type FieldDefinition struct {
	Name        string    `json:"name"`        // 字段名（英文）
	Type        FieldType `json:"type"`        // 字段类型
	Description string    `json:"description"` // 中文描述
	Required    bool      `json:"required"`    // 是否必填
}

// DataSchema 数据模式定义
// 每个数据类别一份，包内静态定义、跨调用共享
type DataSchema struct {
	Name        string                      `json:"name"`        // 模式名称
	Description string                      `json:"description"` // 模式描述
	Fields      map[string]*FieldDefinition `json:"fields"`      // 字段定义
	FieldOrder  []string                    `json:"field_order"` // 字段顺序
}

// RawRow 上游返回的单条原始记录，键为数据源原生列名
type RawRow map[string]any

// Record 已验证的规范化记录
// 键集合严格落在所属模式的字段集合内
type Record struct {
	Schema *DataSchema    `json:"-"`
	Values map[string]any `json:"-"`
}

// Get 按规范字段名取值，字段缺失时返回 nil
func (r Record) Get(name string) any {
	return r.Values[name]
}

// Map 返回可直接序列化的扁平键值表
// 日期字段统一输出为 YYYY-MM-DD 字符串
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.Values))
	for name, value := range r.Values {
		if t, ok := value.(time.Time); ok {
			out[name] = t.Format("2006-01-02")
			continue
		}
		out[name] = value
	}
	return out
}

// MarshalJSON 将记录序列化为扁平 JSON 对象
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// ValidateSchema 验证模式定义的完整性
func ValidateSchema(ds *DataSchema) error {
	if ds == nil {
		return NewValidationError(ErrSchemaNotFound, "", "schema cannot be nil")
	}

	if ds.Name == "" {
		return NewValidationError(ErrSchemaNotFound, "", "schema name cannot be empty")
	}

	if len(ds.Fields) == 0 {
		return NewValidationError(ErrSchemaNotFound, "", "schema must have at least one field")
	}

	if len(ds.FieldOrder) != len(ds.Fields) {
		return NewValidationError(ErrFieldNotFound, "", "field order must cover every field")
	}

	for _, fieldName := range ds.FieldOrder {
		fieldDef, exists := ds.Fields[fieldName]
		if !exists {
			return NewValidationError(ErrFieldNotFound, fieldName, "field in order not found in schema fields")
		}
		if fieldDef == nil || fieldDef.Name != fieldName {
			return NewValidationError(ErrInvalidFieldType, fieldName, "field name mismatch")
		}
		if fieldDef.Type < FieldTypeString || fieldDef.Type > FieldTypeAny {
			return NewValidationError(ErrInvalidFieldType, fieldName, "invalid field type")
		}
	}

	return nil
}
