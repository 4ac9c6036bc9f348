package blocksjson

import (
	"encoding/json"
	"log/slog"
)

// getAttrString безопасно извлекает строковый атрибут из map.
func getAttrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	val, ok := attrs[key]
	if !ok {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// getAttrInt безопасно извлекает целочисленный атрибут из map.
func getAttrInt(attrs map[string]any, key string) int {
	if attrs == nil {
		return 0
	}
	val, ok := attrs[key]
	if !ok {
		return 0
	}

	// Может быть float64 из JSON
	if f, ok := val.(float64); ok {
		return int(f)
	}

	if i, ok := val.(int); ok {
		return i
	}

	return 0
}

// getAttrBool безопасно извлекает булевый атрибут из map.
func getAttrBool(attrs map[string]any, key string) bool {
	if attrs == nil {
		return false
	}
	val, ok := attrs[key]
	if !ok {
		return false
	}
	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// decodeAttr перекладывает вложенный атрибут (объект или массив) в типизированную структуру.
func decodeAttr(attrs map[string]any, key string, dst any) bool {
	val, ok := attrs[key]
	if !ok || val == nil {
		return false
	}
	data, err := json.Marshal(val)
	if err != nil {
		slog.Warn("Encode block attribute", "attr", key, "err", err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("Decode block attribute", "attr", key, "err", err)
		return false
	}
	return true
}

// childNodes приводит children к списку map независимо от того, пришел он из JSON или собран в коде.
func childNodes(val any) ([]map[string]any, bool) {
	switch v := val.(type) {
	case []RawNode:
		res := make([]map[string]any, len(v))
		for i, n := range v {
			res[i] = n
		}
		return res, true
	case []map[string]any:
		return v, true
	case []any:
		res := make([]map[string]any, 0, len(v))
		for _, c := range v {
			switch n := c.(type) {
			case map[string]any:
				res = append(res, n)
			case RawNode:
				res = append(res, n)
			}
		}
		return res, true
	}
	return nil, false
}
