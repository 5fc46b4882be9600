package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the YYYYMMDD form NEIS uses for every date field.
const dateLayout = "20060102"

// FormatDate renders t as YYYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYYMMDD value such as MLSV_YMD or AA_YMD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// Int is an integer record field. NEIS sends these as numeric strings ("3"),
// as plain numbers, or as fractional numbers (498.0); all decode to the
// truncated integer value. Empty strings and null decode to 0; NaN, infinities
// and values outside the int64 range are rejected.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (n *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Int(i)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid integer value %q", raw)
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("integer value %q out of range", raw)
	}
	*n = Int(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Int) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(n), 10), nil
}

// YesNo is a "Y"/"N" flag field.
type YesNo bool

// UnmarshalJSON implements json.Unmarshaler.
func (y *YesNo) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*y = false
		return nil
	}
	switch strings.ToUpper(strings.TrimSpace(*s)) {
	case "Y":
		*y = true
	case "N", "":
		*y = false
	default:
		return fmt.Errorf("invalid Y/N value %q", *s)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (y YesNo) MarshalJSON() ([]byte, error) {
	if y {
		return []byte(`"Y"`), nil
	}
	return []byte(`"N"`), nil
}
