package resource

// ClassInfoParams queries the classes of one school.
type ClassInfoParams struct {
	OfficeCode   string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode   string `url:"SD_SCHUL_CODE"`
	Year         int    `url:"AY,omitempty"`
	Grade        int    `url:"GRADE,omitempty"`
	DayNight     string `url:"DGHT_CRSE_SC_NM,omitempty"`
	SchoolCourse string `url:"SCHUL_CRSE_SC_NM,omitempty"`
	Track        string `url:"ORD_SC_NM,omitempty"`
	Department   string `url:"DDDEP_NM,omitempty"`
}

// NewClassInfoParams returns params for the given office and school.
func NewClassInfoParams(officeCode, schoolCode string) ClassInfoParams {
	return ClassInfoParams{OfficeCode: officeCode, SchoolCode: schoolCode}
}

// Resource implements Params.
func (ClassInfoParams) Resource() Resource { return ClassInfo }

// InYear restricts the query to an academic year.
func (p ClassInfoParams) InYear(year int) ClassInfoParams {
	p.Year = year
	return p
}

// ForGrade restricts the query to one grade.
func (p ClassInfoParams) ForGrade(grade int) ClassInfoParams {
	p.Grade = grade
	return p
}

// ClassInfoItem is one row of classInfo.
type ClassInfoItem struct {
	OfficeCode   string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName   string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode   string `json:"SD_SCHUL_CODE"`
	SchoolName   string `json:"SCHUL_NM"`
	Year         Int    `json:"AY"`
	Grade        Int    `json:"GRADE"`
	DayNight     string `json:"DGHT_CRSE_SC_NM"`
	SchoolCourse string `json:"SCHUL_CRSE_SC_NM"`
	Track        string `json:"ORD_SC_NM"`
	Department   string `json:"DDDEP_NM"`
	ClassName    string `json:"CLASS_NM"`
	LoadedAt     string `json:"LOAD_DTM"`
}
