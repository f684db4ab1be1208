package core

import "strconv"

// FreeRADIUS restモジュールから受け取る属性名
const (
	AttrUserName         = "User-Name"
	AttrCallingStationID = "Calling-Station-Id"
	AttrAcctSessionID    = "Acct-Session-Id"
	AttrEAPMessage       = "EAP-Message"
	AttrProxiedTo        = "FreeRADIUS-Proxied-To"
)

// EAPタイプ（IANA EAP Method Type Numbers）
const (
	EAPTypeNone      = -1
	EAPTypePEAP      = 25
	EAPTypeMSEAPAuth = 26
	EAPTypeMSCHAPv2  = 29
	EAPTypePWD       = 52
)

// eapTypeOffset は"0x"とCode/Identifier/Length（4オクテット）の後ろ。RFC 3748 4章。
const eapTypeOffset = 10

// GetEAPType はEAP-MessageのTypeフィールドを返す。取得できない場合はEAPTypeNone。
func GetEAPType(attrs map[string]string) int {
	msg := attrs[AttrEAPMessage]
	if len(msg) < eapTypeOffset+2 {
		return EAPTypeNone
	}
	t, err := strconv.ParseInt(msg[eapTypeOffset:eapTypeOffset+2], 16, 0)
	if err != nil {
		return EAPTypeNone
	}
	return int(t)
}

// SkipEAPMessage は認証方式を示さない内側のEAPメッセージであればtrueを返す。
// EAP-Messageがない場合はスキップしない。
func SkipEAPMessage(attrs map[string]string) bool {
	switch GetEAPType(attrs) {
	case EAPTypeNone, EAPTypePEAP, EAPTypeMSEAPAuth, EAPTypeMSCHAPv2, EAPTypePWD:
		return false
	default:
		return true
	}
}
