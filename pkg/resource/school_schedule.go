package resource

import "time"

// SchoolScheduleParams queries the academic calendar of one school.
type SchoolScheduleParams struct {
	OfficeCode   string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode   string `url:"SD_SCHUL_CODE"`
	DayNight     string `url:"DGHT_CRSE_SC_NM,omitempty"`
	SchoolCourse string `url:"SCHUL_CRSE_SC_NM,omitempty"`
	Date         string `url:"AA_YMD,omitempty"`
	FromDate     string `url:"AA_FROM_YMD,omitempty"`
	ToDate       string `url:"AA_TO_YMD,omitempty"`
}

// NewSchoolScheduleParams returns params for the given office and school.
func NewSchoolScheduleParams(officeCode, schoolCode string) SchoolScheduleParams {
	return SchoolScheduleParams{OfficeCode: officeCode, SchoolCode: schoolCode}
}

// Resource implements Params.
func (SchoolScheduleParams) Resource() Resource { return SchoolSchedule }

// On restricts the query to a single day.
func (p SchoolScheduleParams) On(day time.Time) SchoolScheduleParams {
	p.Date = FormatDate(day)
	return p
}

// Between restricts the query to an inclusive date range.
func (p SchoolScheduleParams) Between(from, to time.Time) SchoolScheduleParams {
	p.FromDate = FormatDate(from)
	p.ToDate = FormatDate(to)
	return p
}

// SchoolScheduleItem is one event of SchoolSchedule.
type SchoolScheduleItem struct {
	OfficeCode   string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName   string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode   string `json:"SD_SCHUL_CODE"`
	SchoolName   string `json:"SCHUL_NM"`
	Year         Int    `json:"AY"`
	DayNight     string `json:"DGHT_CRSE_SC_NM"`
	SchoolCourse string `json:"SCHUL_CRSE_SC_NM"`
	HolidayKind  string `json:"SBTR_DD_SC_NM"`
	Date         string `json:"AA_YMD"`
	EventName    string `json:"EVENT_NM"`
	EventContent string `json:"EVENT_CNTNT"`
	Grade1       string `json:"ONE_GRADE_EVENT_YN"`
	Grade2       string `json:"TW_GRADE_EVENT_YN"`
	Grade3       string `json:"THREE_GRADE_EVENT_YN"`
	Grade4       string `json:"FR_GRADE_EVENT_YN"`
	Grade5       string `json:"FIV_GRADE_EVENT_YN"`
	Grade6       string `json:"SIX_GRADE_EVENT_YN"`
	LoadedAt     string `json:"LOAD_DTM"`
}

// IsEventForGrade reports whether the event applies to the given grade (1-6).
func (s SchoolScheduleItem) IsEventForGrade(grade int) bool {
	var flag string
	switch grade {
	case 1:
		flag = s.Grade1
	case 2:
		flag = s.Grade2
	case 3:
		flag = s.Grade3
	case 4:
		flag = s.Grade4
	case 5:
		flag = s.Grade5
	case 6:
		flag = s.Grade6
	default:
		return false
	}
	return flag == "Y"
}
