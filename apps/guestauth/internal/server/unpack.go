package server

import (
	"encoding/json"
	"strings"
)

// restAttribute はFreeRADIUS restモジュールが送る1属性分のJSON。
//
//	"<attribute>": {"type": "<type>", "value": [...]}
type restAttribute struct {
	Type  string            `json:"type"`
	Value []json.RawMessage `json:"value"`
}

// UnpackAttributes は各属性のvalueの先頭要素を文字列として取り出す。
// 形式が不正な属性は無視する。
func UnpackAttributes(data map[string]json.RawMessage) map[string]string {
	attrs := make(map[string]string, len(data))
	for name, raw := range data {
		var attr restAttribute
		if err := json.Unmarshal(raw, &attr); err != nil || len(attr.Value) == 0 {
			continue
		}
		attrs[name] = rawString(attr.Value[0])
	}
	return attrs
}

// rawString はJSON文字列ならその中身を、それ以外は表記をそのまま返す。
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
