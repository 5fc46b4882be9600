package envelope

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sternrassler/neis-client/pkg/resource"
)

const schoolInfoBody = `{"schoolInfo":[` +
	`{"head":[{"list_total_count":2},{"RESULT":{"CODE":"INFO-000","MESSAGE":"정상 처리되었습니다."}}]},` +
	`{"row":[` +
	`{"ATPT_OFCDC_SC_CODE":"B10","SD_SCHUL_CODE":"7010536","SCHUL_NM":"서울고등학교","INDST_SPECL_CCCCL_EXST_YN":"N"},` +
	`{"ATPT_OFCDC_SC_CODE":"B10","SD_SCHUL_CODE":"7010537","SCHUL_NM":"서울여자고등학교","INDST_SPECL_CCCCL_EXST_YN":"Y"}` +
	`]}]}`

const mealBody = `{"mealServiceDietInfo":[` +
	`{"head":[{"list_total_count":1},{"RESULT":{"CODE":"INFO-000","MESSAGE":"정상 처리되었습니다."}}]},` +
	`{"row":[{"MMEAL_SC_CODE":"2","MLSV_YMD":"20240311","MLSV_FGR":498.0,"DDISH_NM":"쌀밥<br/>미역국"}]}]}`

func TestDecode_ResourceVariant(t *testing.T) {
	env, err := Decode([]byte(schoolInfoBody))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if env.Tag() != "schoolInfo" {
		t.Errorf("Tag() = %q, want %q", env.Tag(), "schoolInfo")
	}

	p, ok := env.(*Payload[resource.SchoolInfoItem])
	if !ok {
		t.Fatalf("envelope type = %T, want *Payload[SchoolInfoItem]", env)
	}
	if p.Head.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", p.Head.TotalCount)
	}
	if p.Head.Result.Code != CodeOK {
		t.Errorf("Result.Code = %q, want %q", p.Head.Result.Code, CodeOK)
	}
	if len(p.Body.Row) != 2 {
		t.Fatalf("rows = %d, want 2", len(p.Body.Row))
	}
	if p.Body.Row[0].SchoolName != "서울고등학교" || p.Body.Row[1].SchoolCode != "7010537" {
		t.Errorf("rows out of order or mis-decoded: %+v", p.Body.Row)
	}
	if bool(p.Body.Row[0].IndustrySpecialClass) || !bool(p.Body.Row[1].IndustrySpecialClass) {
		t.Errorf("Y/N flags mis-decoded: %+v", p.Body.Row)
	}
}

func TestDecode_FractionalField(t *testing.T) {
	env, err := Decode([]byte(mealBody))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	total, rows := MealService.Extract(env)
	if total != 1 || len(rows) != 1 {
		t.Fatalf("Extract() = (%d, %d rows), want (1, 1 row)", total, len(rows))
	}
	if rows[0].Servings != 498 {
		t.Errorf("Servings = %d, want 498", rows[0].Servings)
	}
}

func TestDecode_BareResult(t *testing.T) {
	env, err := Decode([]byte(`{"RESULT":{"CODE":"INFO-200","MESSAGE":"해당하는 데이터가 없습니다."}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	r, ok := env.(*Result)
	if !ok {
		t.Fatalf("envelope type = %T, want *Result", env)
	}
	if r.Tag() != ResultTag {
		t.Errorf("Tag() = %q, want %q", r.Tag(), ResultTag)
	}
	if !r.Code.IsNoData() {
		t.Errorf("IsNoData() = false for %s", r.Code)
	}
	if r.Code.IsError() {
		t.Errorf("IsError() = true for %s", r.Code)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantTag string
		wantMsg string
	}{
		{
			name:    "not json",
			body:    `<html>error</html>`,
			wantMsg: "invalid character",
		},
		{
			name:    "json array",
			body:    `[1,2,3]`,
			wantMsg: "cannot unmarshal",
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantMsg: "got 0",
		},
		{
			name:    "two keys",
			body:    `{"RESULT":{"CODE":"INFO-200","MESSAGE":"x"},"schoolInfo":[]}`,
			wantMsg: "got 2",
		},
		{
			name:    "unknown variant",
			body:    `{"busStops":[]}`,
			wantTag: "busStops",
			wantMsg: `unknown variant "busStops"`,
		},
		{
			name:    "result missing message",
			body:    `{"RESULT":{"CODE":"ERROR-290"}}`,
			wantTag: ResultTag,
			wantMsg: "missing MESSAGE",
		},
		{
			name:    "variant not a pair",
			body:    `{"schoolInfo":[{"head":[{"list_total_count":0},{"RESULT":{"CODE":"INFO-000","MESSAGE":"x"}}]}]}`,
			wantTag: "schoolInfo",
			wantMsg: "got 1 elements",
		},
		{
			name:    "head with one element",
			body:    `{"schoolInfo":[{"head":[{"list_total_count":1}]},{"row":[]}]}`,
			wantTag: "schoolInfo",
			wantMsg: "head: expected 2 elements",
		},
		{
			name:    "head missing total",
			body:    `{"schoolInfo":[{"head":[{},{"RESULT":{"CODE":"INFO-000","MESSAGE":"x"}}]},{"row":[]}]}`,
			wantTag: "schoolInfo",
			wantMsg: "missing list_total_count",
		},
		{
			name:    "negative total",
			body:    `{"schoolInfo":[{"head":[{"list_total_count":-1},{"RESULT":{"CODE":"INFO-000","MESSAGE":"x"}}]},{"row":[]}]}`,
			wantTag: "schoolInfo",
			wantMsg: "negative list_total_count",
		},
		{
			name:    "head missing result",
			body:    `{"schoolInfo":[{"head":[{"list_total_count":1},{}]},{"row":[]}]}`,
			wantTag: "schoolInfo",
			wantMsg: "missing RESULT",
		},
		{
			name:    "missing head key",
			body:    `{"schoolInfo":[{},{"row":[]}]}`,
			wantTag: "schoolInfo",
			wantMsg: "missing head",
		},
		{
			name:    "missing row key",
			body:    `{"schoolInfo":[{"head":[{"list_total_count":0},{"RESULT":{"CODE":"INFO-000","MESSAGE":"x"}}]},{}]}`,
			wantTag: "schoolInfo",
			wantMsg: "missing row",
		},
		{
			name:    "row of wrong shape",
			body:    `{"classInfo":[{"head":[{"list_total_count":1},{"RESULT":{"CODE":"INFO-000","MESSAGE":"x"}}]},{"row":[{"GRADE":"three"}]}]}`,
			wantTag: "classInfo",
			wantMsg: "row:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.body))
			if err == nil {
				t.Fatalf("Decode() = %T, want error", env)
			}

			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("error type = %T, want *DecodeError", err)
			}
			if decErr.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", decErr.Tag, tt.wantTag)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
			if decErr.Snippet != tt.body {
				t.Errorf("Snippet = %q, want full short body", decErr.Snippet)
			}
		})
	}
}

func TestExtract_Isolation(t *testing.T) {
	env, err := Decode([]byte(schoolInfoBody))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// A schoolInfo envelope is invisible to every other extractor.
	total, rows := ClassInfo.Extract(env)
	if total != 0 || len(rows) != 0 {
		t.Errorf("ClassInfo.Extract(schoolInfo) = (%d, %d rows), want (0, 0)", total, len(rows))
	}
	mt, mrows := MealService.Extract(env)
	if mt != 0 || len(mrows) != 0 {
		t.Errorf("MealService.Extract(schoolInfo) = (%d, %d rows), want (0, 0)", mt, len(mrows))
	}

	// The matching extractor returns the head total and the rows as received.
	total2, rows2 := SchoolInfo.Extract(env)
	if total2 != 2 || len(rows2) != 2 {
		t.Errorf("SchoolInfo.Extract() = (%d, %d rows), want (2, 2)", total2, len(rows2))
	}
}

func TestExtract_SharedRecordType(t *testing.T) {
	// Same record type, different resource tag.
	other := Kind[resource.SchoolInfoItem]{Resource: resource.ClassInfo}

	env, err := Decode([]byte(schoolInfoBody))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if total, rows := other.Extract(env); total != 0 || rows != nil {
		t.Errorf("Extract() = (%d, %v), want (0, nil)", total, rows)
	}
}

func TestExtract_BareResult(t *testing.T) {
	env := &Result{Code: ResultCode{Code: CodeNoData, Message: "없음"}}
	if total, rows := SchoolSchedule.Extract(env); total != 0 || rows != nil {
		t.Errorf("Extract(RESULT) = (%d, %v), want (0, nil)", total, rows)
	}
	if total, rows := ElsTimetable.Extract(nil); total != 0 || rows != nil {
		t.Errorf("Extract(nil) = (%d, %v), want (0, nil)", total, rows)
	}
}

func TestVariants_CoverEveryResource(t *testing.T) {
	for _, r := range resource.All() {
		if !Registered(r) {
			t.Errorf("resource %q has no registered variant", r)
		}
	}
	if len(variants) != len(resource.All()) {
		t.Errorf("variants = %d, resources = %d", len(variants), len(resource.All()))
	}
	if Registered(ResultTag) {
		t.Error("RESULT must not be registered as a resource variant")
	}
}

func TestDecode_EmptyRows(t *testing.T) {
	body := `{"elsTimetable":[{"head":[{"list_total_count":0},{"RESULT":{"CODE":"INFO-000","MESSAGE":"x"}}]},{"row":[]}]}`
	env, err := Decode([]byte(body))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	total, rows := ElsTimetable.Extract(env)
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %v, want empty non-nil slice", rows)
	}
}

func TestResultCode(t *testing.T) {
	tests := []struct {
		code       string
		wantNoData bool
		wantError  bool
	}{
		{CodeOK, false, false},
		{CodeNoData, true, false},
		{CodeKeyRestricted, false, false},
		{CodeInvalidKey, false, true},
		{CodeTrafficLimit, false, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rc := ResultCode{Code: tt.code}
			if rc.IsNoData() != tt.wantNoData {
				t.Errorf("IsNoData() = %v, want %v", rc.IsNoData(), tt.wantNoData)
			}
			if rc.IsError() != tt.wantError {
				t.Errorf("IsError() = %v, want %v", rc.IsError(), tt.wantError)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("가", 200) // 600 bytes
	s := Snippet([]byte(long))
	if !strings.HasSuffix(s, "...") {
		t.Errorf("long snippet should be truncated: %q", s)
	}
	trimmed := strings.TrimSuffix(s, "...")
	if len(trimmed) > snippetLimit {
		t.Errorf("snippet length = %d, want <= %d", len(trimmed), snippetLimit)
	}
	if !strings.HasPrefix(long, trimmed) || len(trimmed)%3 != 0 {
		t.Errorf("snippet cut inside a rune: %q", trimmed)
	}

	if got := Snippet([]byte("short")); got != "short" {
		t.Errorf("Snippet(short) = %q", got)
	}
}
