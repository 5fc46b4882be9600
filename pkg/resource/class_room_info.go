package resource

// ClassRoomInfoParams queries the classrooms used by a school's timetable.
type ClassRoomInfoParams struct {
	OfficeCode   string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode   string `url:"SD_SCHUL_CODE"`
	Year         int    `url:"AY,omitempty"`
	Grade        int    `url:"GRADE,omitempty"`
	Semester     int    `url:"SEM,omitempty"`
	SchoolCourse string `url:"SCHUL_CRSE_SC_NM,omitempty"`
	DayNight     string `url:"DGHT_CRSE_SC_NM,omitempty"`
	Track        string `url:"ORD_SC_NM,omitempty"`
	Department   string `url:"DDDEP_NM,omitempty"`
}

// NewClassRoomInfoParams returns params for the given office and school.
func NewClassRoomInfoParams(officeCode, schoolCode string) ClassRoomInfoParams {
	return ClassRoomInfoParams{OfficeCode: officeCode, SchoolCode: schoolCode}
}

// Resource implements Params.
func (ClassRoomInfoParams) Resource() Resource { return ClassRoomInfo }

// ClassRoomInfoItem is one row of tiClrminfo.
type ClassRoomInfoItem struct {
	OfficeCode   string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName   string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode   string `json:"SD_SCHUL_CODE"`
	SchoolName   string `json:"SCHUL_NM"`
	Year         Int    `json:"AY"`
	Grade        Int    `json:"GRADE"`
	Semester     Int    `json:"SEM"`
	SchoolCourse string `json:"SCHUL_CRSE_SC_NM"`
	DayNight     string `json:"DGHT_CRSE_SC_NM"`
	Track        string `json:"ORD_SC_NM"`
	Department   string `json:"DDDEP_NM"`
	Classroom    string `json:"CLRM_NM"`
	LoadedAt     string `json:"LOAD_DTM"`
}
