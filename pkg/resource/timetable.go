package resource

import "time"

// TimetableQuery holds the parameters shared by every timetable resource.
type TimetableQuery struct {
	OfficeCode string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode string `url:"SD_SCHUL_CODE"`
	Year       int    `url:"AY,omitempty"`
	Semester   int    `url:"SEM,omitempty"`
	Date       string `url:"ALL_TI_YMD,omitempty"`
	Grade      int    `url:"GRADE,omitempty"`
	ClassName  string `url:"CLASS_NM,omitempty"`
	Period     int    `url:"PERIO,omitempty"`
	FromDate   string `url:"TI_FROM_YMD,omitempty"`
	ToDate     string `url:"TI_TO_YMD,omitempty"`
}

func (q TimetableQuery) on(day time.Time) TimetableQuery {
	q.Date = FormatDate(day)
	return q
}

func (q TimetableQuery) between(from, to time.Time) TimetableQuery {
	q.FromDate = FormatDate(from)
	q.ToDate = FormatDate(to)
	return q
}

// TimetableEntry holds the fields shared by every timetable row.
type TimetableEntry struct {
	OfficeCode string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode string `json:"SD_SCHUL_CODE"`
	SchoolName string `json:"SCHUL_NM"`
	Year       Int    `json:"AY"`
	Semester   Int    `json:"SEM"`
	Date       string `json:"ALL_TI_YMD"`
	Grade      Int    `json:"GRADE"`
	ClassName  string `json:"CLASS_NM"`
	Period     Int    `json:"PERIO"`
	Content    string `json:"ITRT_CNTNT"`
	LoadedAt   string `json:"LOAD_DTM"`
}

// ElsTimetableParams queries an elementary school timetable.
type ElsTimetableParams struct {
	TimetableQuery
}

// NewElsTimetableParams returns params for the given office and school.
func NewElsTimetableParams(officeCode, schoolCode string) ElsTimetableParams {
	return ElsTimetableParams{TimetableQuery{OfficeCode: officeCode, SchoolCode: schoolCode}}
}

// Resource implements Params.
func (ElsTimetableParams) Resource() Resource { return ElsTimetable }

// On restricts the query to a single day.
func (p ElsTimetableParams) On(day time.Time) ElsTimetableParams {
	p.TimetableQuery = p.on(day)
	return p
}

// Between restricts the query to an inclusive date range.
func (p ElsTimetableParams) Between(from, to time.Time) ElsTimetableParams {
	p.TimetableQuery = p.between(from, to)
	return p
}

// InYear sets the school year (AY).
func (p ElsTimetableParams) InYear(year int) ElsTimetableParams {
	p.Year = year
	return p
}

// InSemester sets the semester (SEM).
func (p ElsTimetableParams) InSemester(sem int) ElsTimetableParams {
	p.Semester = sem
	return p
}

// ForGrade sets the grade.
func (p ElsTimetableParams) ForGrade(grade int) ElsTimetableParams {
	p.Grade = grade
	return p
}

// ForClass sets the class name.
func (p ElsTimetableParams) ForClass(class string) ElsTimetableParams {
	p.ClassName = class
	return p
}

// ForPeriod sets the period (PERIO).
func (p ElsTimetableParams) ForPeriod(period int) ElsTimetableParams {
	p.Period = period
	return p
}

// ElsTimetableItem is one period of elsTimetable.
type ElsTimetableItem struct {
	TimetableEntry
}

// MisTimetableParams queries a middle school timetable.
type MisTimetableParams struct {
	TimetableQuery
	DayNight string `url:"DGHT_CRSE_SC_NM,omitempty"`
}

// NewMisTimetableParams returns params for the given office and school.
func NewMisTimetableParams(officeCode, schoolCode string) MisTimetableParams {
	return MisTimetableParams{TimetableQuery: TimetableQuery{OfficeCode: officeCode, SchoolCode: schoolCode}}
}

// Resource implements Params.
func (MisTimetableParams) Resource() Resource { return MisTimetable }

// On restricts the query to a single day.
func (p MisTimetableParams) On(day time.Time) MisTimetableParams {
	p.TimetableQuery = p.on(day)
	return p
}

// Between restricts the query to an inclusive date range.
func (p MisTimetableParams) Between(from, to time.Time) MisTimetableParams {
	p.TimetableQuery = p.between(from, to)
	return p
}

// InYear sets the school year (AY).
func (p MisTimetableParams) InYear(year int) MisTimetableParams {
	p.Year = year
	return p
}

// InSemester sets the semester (SEM).
func (p MisTimetableParams) InSemester(sem int) MisTimetableParams {
	p.Semester = sem
	return p
}

// ForGrade sets the grade.
func (p MisTimetableParams) ForGrade(grade int) MisTimetableParams {
	p.Grade = grade
	return p
}

// ForClass sets the class name.
func (p MisTimetableParams) ForClass(class string) MisTimetableParams {
	p.ClassName = class
	return p
}

// ForPeriod sets the period (PERIO).
func (p MisTimetableParams) ForPeriod(period int) MisTimetableParams {
	p.Period = period
	return p
}

// MisTimetableItem is one period of misTimetable.
type MisTimetableItem struct {
	TimetableEntry
	DayNight string `json:"DGHT_CRSE_SC_NM"`
}

// HisTimetableParams queries a high school timetable.
type HisTimetableParams struct {
	TimetableQuery
	DayNight   string `url:"DGHT_CRSE_SC_NM,omitempty"`
	Track      string `url:"ORD_SC_NM,omitempty"`
	Department string `url:"DDDEP_NM,omitempty"`
	Classroom  string `url:"CLRM_NM,omitempty"`
}

// NewHisTimetableParams returns params for the given office and school.
func NewHisTimetableParams(officeCode, schoolCode string) HisTimetableParams {
	return HisTimetableParams{TimetableQuery: TimetableQuery{OfficeCode: officeCode, SchoolCode: schoolCode}}
}

// Resource implements Params.
func (HisTimetableParams) Resource() Resource { return HisTimetable }

// On restricts the query to a single day.
func (p HisTimetableParams) On(day time.Time) HisTimetableParams {
	p.TimetableQuery = p.on(day)
	return p
}

// Between restricts the query to an inclusive date range.
func (p HisTimetableParams) Between(from, to time.Time) HisTimetableParams {
	p.TimetableQuery = p.between(from, to)
	return p
}

// InYear sets the school year (AY).
func (p HisTimetableParams) InYear(year int) HisTimetableParams {
	p.Year = year
	return p
}

// InSemester sets the semester (SEM).
func (p HisTimetableParams) InSemester(sem int) HisTimetableParams {
	p.Semester = sem
	return p
}

// ForGrade sets the grade.
func (p HisTimetableParams) ForGrade(grade int) HisTimetableParams {
	p.Grade = grade
	return p
}

// ForClass sets the class name.
func (p HisTimetableParams) ForClass(class string) HisTimetableParams {
	p.ClassName = class
	return p
}

// ForPeriod sets the period (PERIO).
func (p HisTimetableParams) ForPeriod(period int) HisTimetableParams {
	p.Period = period
	return p
}

// HisTimetableItem is one period of hisTimetable.
type HisTimetableItem struct {
	TimetableEntry
	DayNight   string `json:"DGHT_CRSE_SC_NM"`
	Track      string `json:"ORD_SC_NM"`
	Department string `json:"DDDEP_NM"`
	Classroom  string `json:"CLRM_NM"`
}

// SpsTimetableParams queries a special school timetable.
type SpsTimetableParams struct {
	TimetableQuery
	SchoolCourse string `url:"SCHUL_CRSE_SC_NM,omitempty"`
	DayNight     string `url:"DGHT_CRSE_SC_NM,omitempty"`
}

// NewSpsTimetableParams returns params for the given office and school.
func NewSpsTimetableParams(officeCode, schoolCode string) SpsTimetableParams {
	return SpsTimetableParams{TimetableQuery: TimetableQuery{OfficeCode: officeCode, SchoolCode: schoolCode}}
}

// Resource implements Params.
func (SpsTimetableParams) Resource() Resource { return SpsTimetable }

// On restricts the query to a single day.
func (p SpsTimetableParams) On(day time.Time) SpsTimetableParams {
	p.TimetableQuery = p.on(day)
	return p
}

// Between restricts the query to an inclusive date range.
func (p SpsTimetableParams) Between(from, to time.Time) SpsTimetableParams {
	p.TimetableQuery = p.between(from, to)
	return p
}

// InYear sets the school year (AY).
func (p SpsTimetableParams) InYear(year int) SpsTimetableParams {
	p.Year = year
	return p
}

// InSemester sets the semester (SEM).
func (p SpsTimetableParams) InSemester(sem int) SpsTimetableParams {
	p.Semester = sem
	return p
}

// ForGrade sets the grade.
func (p SpsTimetableParams) ForGrade(grade int) SpsTimetableParams {
	p.Grade = grade
	return p
}

// ForClass sets the class name.
func (p SpsTimetableParams) ForClass(class string) SpsTimetableParams {
	p.ClassName = class
	return p
}

// ForPeriod sets the period (PERIO).
func (p SpsTimetableParams) ForPeriod(period int) SpsTimetableParams {
	p.Period = period
	return p
}

// SpsTimetableItem is one period of spsTimetable.
type SpsTimetableItem struct {
	TimetableEntry
	SchoolCourse string `json:"SCHUL_CRSE_SC_NM"`
	DayNight     string `json:"DGHT_CRSE_SC_NM"`
	Classroom    string `json:"CLRM_NM"`
}
