package errs

import (
	stderrors "errors"
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
)

// 错误原因，前端根据 reason 区分错误类型
const (
	ReasonValidation    = "SECTOR_REQUIRED"
	ReasonConfiguration = "API_KEY_MISSING"
	ReasonUpstream      = "UPSTREAM_FAILED"
	ReasonUnknown       = "UNKNOWN"
	ReasonBusy          = "SEARCH_IN_PROGRESS"
)

const (
	msgValidation = "Por favor, insira um setor da economia."
	msgUnknown    = "Ocorreu um erro desconhecido."
	msgBusy       = "Uma análise já está em andamento."
)

// 用于 errors.Is 比较的哨兵值，只比较 code 和 reason
var (
	ErrValidation    = errors.BadRequest(ReasonValidation, msgValidation)
	ErrConfiguration = errors.InternalServer(ReasonConfiguration, "")
	ErrUpstream      = errors.New(502, ReasonUpstream, "")
	ErrUnknown       = errors.InternalServer(ReasonUnknown, msgUnknown)
	ErrBusy          = errors.Conflict(ReasonBusy, msgBusy)
)

// Validation 行业名称为空
func Validation() *errors.Error {
	return errors.BadRequest(ReasonValidation, msgValidation)
}

// Configuration 缺少 API 凭证
func Configuration(envKey string) *errors.Error {
	return errors.InternalServer(ReasonConfiguration,
		fmt.Sprintf("API key not found. Please set the %s environment variable.", envKey))
}

// Upstream 模型调用失败，消息中附带原始错误
func Upstream(cause error) *errors.Error {
	return errors.New(502, ReasonUpstream,
		fmt.Sprintf("Failed to get a response from the AI model: %s", cause.Error())).WithCause(cause)
}

// Busy 已有分析正在进行
func Busy() *errors.Error {
	return errors.Conflict(ReasonBusy, msgBusy)
}

// Unknown 无法识别的错误
func Unknown(cause error) *errors.Error {
	e := errors.InternalServer(ReasonUnknown, msgUnknown)
	if cause != nil {
		e = e.WithCause(cause)
	}
	return e
}

// Normalize 把任意错误归类到已知的错误类型，无法识别的统一视为 Unknown
func Normalize(err error) *errors.Error {
	if err == nil {
		return nil
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		switch e.Reason {
		case ReasonValidation, ReasonConfiguration, ReasonUpstream, ReasonUnknown, ReasonBusy:
			return e
		}
	}
	return Unknown(err)
}

// Message 返回可直接展示给用户的错误文本
func Message(err error) string {
	if err == nil {
		return ""
	}
	return Normalize(err).Message
}
