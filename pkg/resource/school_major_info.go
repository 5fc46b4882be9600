package resource

// SchoolMajorInfoParams queries the departments offered by schools of an office.
type SchoolMajorInfoParams struct {
	OfficeCode string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode string `url:"SD_SCHUL_CODE,omitempty"`
	DayNight   string `url:"DGHT_CRSE_SC_NM,omitempty"`
	Track      string `url:"ORD_SC_NM,omitempty"`
}

// NewSchoolMajorInfoParams returns params for every school of an office.
func NewSchoolMajorInfoParams(officeCode string) SchoolMajorInfoParams {
	return SchoolMajorInfoParams{OfficeCode: officeCode}
}

// Resource implements Params.
func (SchoolMajorInfoParams) Resource() Resource { return SchoolMajorInfo }

// ForSchool narrows the query to one school.
func (p SchoolMajorInfoParams) ForSchool(schoolCode string) SchoolMajorInfoParams {
	p.SchoolCode = schoolCode
	return p
}

// SchoolMajorInfoItem is one row of schoolMajorinfo.
type SchoolMajorInfoItem struct {
	OfficeCode string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode string `json:"SD_SCHUL_CODE"`
	SchoolName string `json:"SCHUL_NM"`
	DayNight   string `json:"DGHT_CRSE_SC_NM"`
	Track      string `json:"ORD_SC_NM"`
	Department string `json:"DDDEP_NM"`
	LoadedAt   string `json:"LOAD_DTM"`
}
