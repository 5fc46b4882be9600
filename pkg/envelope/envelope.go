// Package envelope decodes NEIS response bodies.
//
// Every successful NEIS response is a JSON object with exactly one key, the
// name of the requested resource, holding a two element array:
//
//	{"schoolInfo": [
//	    {"head": [{"list_total_count": 1}, {"RESULT": {"CODE": "INFO-000", "MESSAGE": "..."}}]},
//	    {"row": [ {...}, ... ]}
//	]}
//
// Errors and empty results come back as a bare result instead:
//
//	{"RESULT": {"CODE": "INFO-200", "MESSAGE": "해당하는 데이터가 없습니다."}}
//
// Decode turns either shape into an Envelope. The set of variants is closed:
// each resource is registered once through its Kind, which is also the
// Extractor that pulls (total count, rows) back out.
package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/neis-client/pkg/resource"
)

// ResultTag is the top-level key of a bare result envelope.
const ResultTag = "RESULT"

// Result codes returned by NEIS.
const (
	CodeOK             = "INFO-000"  // 정상 처리되었습니다.
	CodeNoData         = "INFO-200"  // 해당하는 데이터가 없습니다.
	CodeKeyRestricted  = "INFO-300"  // 관리자에 의해 인증키 사용이 제한되었습니다.
	CodeInvalidKey     = "ERROR-290" // 인증키가 유효하지 않습니다.
	CodeMissingParam   = "ERROR-300" // 필수 값이 누락되어 있습니다.
	CodeUnknownService = "ERROR-310" // 해당하는 서비스를 찾을 수 없습니다.
	CodeBadType        = "ERROR-333" // 요청위치 값의 타입이 유효하지 않습니다.
	CodePageTooLarge   = "ERROR-336" // 데이터요청은 한번에 최대 1,000건을 넘을 수 없습니다.
	CodeTrafficLimit   = "ERROR-337" // 일별 트래픽 제한을 넘은 호출입니다.
	CodeServerError    = "ERROR-500" // 서버 오류입니다.
	CodeDatabaseError  = "ERROR-600" // 데이터베이스 연결 오류입니다.
	CodeSQLError       = "ERROR-601" // SQL 문장 오류입니다.
)

// ResultCode is the machine code and message NEIS attaches to every response.
type ResultCode struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

// IsNoData reports whether the code means the query matched nothing.
func (r ResultCode) IsNoData() bool {
	return r.Code == CodeNoData
}

// IsError reports whether the code is one of the ERROR-xxx family.
func (r ResultCode) IsError() bool {
	return len(r.Code) >= 5 && r.Code[:5] == "ERROR"
}

// String implements fmt.Stringer.
func (r ResultCode) String() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// UnmarshalJSON implements json.Unmarshaler. Both CODE and MESSAGE are required.
func (r *ResultCode) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code    *string `json:"CODE"`
		Message *string `json:"MESSAGE"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Code == nil {
		return fmt.Errorf("result: missing CODE")
	}
	if raw.Message == nil {
		return fmt.Errorf("result: missing MESSAGE")
	}
	r.Code = *raw.Code
	r.Message = *raw.Message
	return nil
}

// Head is the metadata half of a resource envelope. On the wire it is the
// positional pair [{"list_total_count": N}, {"RESULT": {...}}].
type Head struct {
	TotalCount int
	Result     ResultCode
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Head) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("head: expected 2 elements, got %d", len(parts))
	}

	var count struct {
		TotalCount *int `json:"list_total_count"`
	}
	if err := json.Unmarshal(parts[0], &count); err != nil {
		return fmt.Errorf("head: list_total_count: %w", err)
	}
	if count.TotalCount == nil {
		return fmt.Errorf("head: missing list_total_count")
	}
	if *count.TotalCount < 0 {
		return fmt.Errorf("head: negative list_total_count %d", *count.TotalCount)
	}

	var result struct {
		Result *ResultCode `json:"RESULT"`
	}
	if err := json.Unmarshal(parts[1], &result); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	if result.Result == nil {
		return fmt.Errorf("head: missing RESULT")
	}

	h.TotalCount = *count.TotalCount
	h.Result = *result.Result
	return nil
}

// Body is the data half of a resource envelope.
type Body[T any] struct {
	Row []T `json:"row"`
}

// Envelope is a decoded response. Its concrete type is either *Result or
// *Payload[T] for the record type registered to the resource.
type Envelope interface {
	// Tag is the top-level key the envelope was decoded from.
	Tag() string
	isEnvelope()
}

// Result is the bare result variant.
type Result struct {
	Code ResultCode
}

func (*Result) Tag() string { return ResultTag }
func (*Result) isEnvelope() {}

// Payload is a resource variant carrying rows of type T.
type Payload[T any] struct {
	Resource resource.Resource
	Head     Head
	Body     Body[T]
}

func (p *Payload[T]) Tag() string { return string(p.Resource) }
func (*Payload[T]) isEnvelope()   {}
