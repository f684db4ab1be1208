// Package httputil はRESTファサードのエラーレスポンス（RFC 7807）を扱う。
package httputil

import "net/http"

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

// ProblemDetail はRFC 7807準拠のエラーレスポンス構造体。
// TraceIDは拡張メンバーで、レスポンスヘッダーX-Trace-IDと同じ値が入る。
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	TraceID  string `json:"trace_id,omitempty"`
}

// Problem はステータスコードの標準テキストをTitleとしたProblemDetailを返す。
func Problem(status int, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

func BadRequest(detail string) *ProblemDetail {
	return Problem(http.StatusBadRequest, detail)
}

func Unauthorized(detail string) *ProblemDetail {
	return Problem(http.StatusUnauthorized, detail)
}

func InternalServerError(detail string) *ProblemDetail {
	return Problem(http.StatusInternalServerError, detail)
}

func ServiceUnavailable(detail string) *ProblemDetail {
	return Problem(http.StatusServiceUnavailable, detail)
}
