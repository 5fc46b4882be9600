package resource

// SchoolAflcoInfoParams queries the tracks (계열) of schools of an office.
type SchoolAflcoInfoParams struct {
	OfficeCode string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode string `url:"SD_SCHUL_CODE,omitempty"`
	DayNight   string `url:"DGHT_CRSE_SC_NM,omitempty"`
}

// NewSchoolAflcoInfoParams returns params for every school of an office.
func NewSchoolAflcoInfoParams(officeCode string) SchoolAflcoInfoParams {
	return SchoolAflcoInfoParams{OfficeCode: officeCode}
}

// Resource implements Params.
func (SchoolAflcoInfoParams) Resource() Resource { return SchoolAflcoInfo }

// ForSchool narrows the query to one school.
func (p SchoolAflcoInfoParams) ForSchool(schoolCode string) SchoolAflcoInfoParams {
	p.SchoolCode = schoolCode
	return p
}

// SchoolAflcoInfoItem is one row of schulAflcoinfo.
type SchoolAflcoInfoItem struct {
	OfficeCode string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode string `json:"SD_SCHUL_CODE"`
	SchoolName string `json:"SCHUL_NM"`
	DayNight   string `json:"DGHT_CRSE_SC_NM"`
	Track      string `json:"ORD_SC_NM"`
	LoadedAt   string `json:"LOAD_DTM"`
}
