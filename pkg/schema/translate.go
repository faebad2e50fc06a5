package schema

// ColumnRename 单个列名映射
type ColumnRename struct {
	Source string // 数据源原生列名
	Target string // 对外暴露的规范列名
}

// ColumnMapping 某一数据类别的有序列名映射表
type ColumnMapping []ColumnRename

// Translate 将原始记录的列名翻译为规范列名
// 只改键不改值；映射表中没有的上游列一律丢弃（白名单语义）
func Translate(raw RawRow, mapping ColumnMapping) RawRow {
	out := make(RawRow, len(mapping))
	for _, rename := range mapping {
		if value, exists := raw[rename.Source]; exists {
			out[rename.Target] = value
		}
	}
	return out
}
