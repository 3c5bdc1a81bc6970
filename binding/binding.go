// Package binding fills ${path} placeholders in markup text from decoded
// JSON or YAML data before the text reaches the tag parser.
package binding

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	return interpolate(text, data, false)
}

// InterpolatePlain 与 Interpolate 相同，但会去掉替换值中的 '<'，
// 使数据无法注入标签。
func InterpolatePlain(text string, data any) string {
	return interpolate(text, data, true)
}

func interpolate(text string, data any, plain bool) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := Resolve(data, path)
		if !ok {
			return match
		}
		s := format(val)
		if plain {
			s = strings.ReplaceAll(s, "<", "")
		}
		return s
	})
}

// Resolve 按 a.b[0].c 形式的路径查找值。
func Resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			if current, ok = descendMap(current, name); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []int, bool) {
	name, rest, _ := strings.Cut(segment, "[")
	if rest == "" {
		return name, nil, name != ""
	}
	rest = "[" + rest
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	}
	v := reflect.ValueOf(current)
	if v.Kind() != reflect.Map {
		return nil, false
	}
	// yaml 解码到 any 时可能产生非 string 的键
	for _, k := range v.MapKeys() {
		if fmt.Sprint(k.Interface()) == key {
			return v.MapIndex(k).Interface(), true
		}
	}
	return nil, false
}

func descendArray(current any, idx int) (any, bool) {
	if c, ok := current.([]any); ok {
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	}
	v := reflect.ValueOf(current)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	if idx < 0 || idx >= v.Len() {
		return nil, false
	}
	return v.Index(idx).Interface(), true
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
