// Package logging はログ関連のユーティリティを提供する。
package logging

// ouiDigits はマスキングせずに残す先頭の16進桁数（OUI部分）。
const ouiDigits = 6

// MaskMAC はデバイスID（MACアドレス）のOUIより後ろの16進桁を'*'に置き換える。
// 区切り文字（':'や'-'）はそのまま残すため、表記形式に依存しない。
//
//	aa-bb-cc-dd-ee-ff → aa-bb-cc-**-**-**
//	aabbccddeeff      → aabbcc******
//
// OUI以下の桁数しかない値や enabled=false の場合は変更しない。
func MaskMAC(mac string, enabled bool) string {
	if !enabled {
		return mac
	}

	out := []byte(mac)
	seen := 0
	for i, c := range out {
		if !isHexDigit(c) {
			continue
		}
		seen++
		if seen > ouiDigits {
			out[i] = '*'
		}
	}
	if seen <= ouiDigits {
		return mac
	}
	return string(out)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Masker はLOG_MASK_MACの設定を保持する。nilの場合はマスキングしない。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// MAC はデバイスIDをマスキングする。
func (m *Masker) MAC(mac string) string {
	if m == nil {
		return mac
	}
	return MaskMAC(mac, m.enabled)
}
