package httputil

import "github.com/gin-gonic/gin"

// TraceIDKey はgin.ContextからトレースIDを取り出すキー。
const TraceIDKey = "trace_id"

// WriteError はProblemDetailをGinレスポンスとして書き込む。
// instanceとtrace_idが未設定ならリクエストから補う。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, withRequest(c, problem))
}

// AbortWithError はProblemDetailをGinレスポンスとして書き込み、リクエスト処理を中断する。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, withRequest(c, problem))
}

func withRequest(c *gin.Context, problem *ProblemDetail) *ProblemDetail {
	p := *problem
	if p.Instance == "" && c.Request != nil {
		p.Instance = c.Request.URL.Path
	}
	if p.TraceID == "" {
		p.TraceID = c.GetString(TraceIDKey)
	}
	return &p
}
