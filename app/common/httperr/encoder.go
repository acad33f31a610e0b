// Package httperr 统一的 HTTP 错误响应格式
package httperr

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/errors"
)

// Response 错误响应体
type Response struct {
	Error string `json:"error"`
}

// ErrorEncoder 将 kratos 错误编码为 {"error": message}
// 非 kratos 错误按 500 处理
func ErrorEncoder(w nethttp.ResponseWriter, _ *nethttp.Request, err error) {
	se := errors.FromError(err)
	code := int(se.Code)
	if code < 400 || code > 599 {
		code = nethttp.StatusInternalServerError
	}
	msg := se.Message
	if msg == "" {
		msg = se.Reason
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Error: msg})
}
