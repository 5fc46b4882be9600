package resource

// AcademyInfoParams queries private academies (학원/교습소) under an office.
type AcademyInfoParams struct {
	OfficeCode   string `url:"ATPT_OFCDC_SC_CODE"`
	Zone         string `url:"ADMST_ZONE_NM,omitempty"`
	Number       string `url:"ACA_ASNUM,omitempty"`
	Name         string `url:"ACA_NM,omitempty"`
	Realm        string `url:"REALM_SC_NM,omitempty"`
	LessonTrack  string `url:"LE_ORD_NM,omitempty"`
	LessonCourse string `url:"LE_CRSE_NM,omitempty"`
}

// NewAcademyInfoParams returns params for every academy of an office.
func NewAcademyInfoParams(officeCode string) AcademyInfoParams {
	return AcademyInfoParams{OfficeCode: officeCode}
}

// Resource implements Params.
func (AcademyInfoParams) Resource() Resource { return AcademyInfo }

// AcademyInfoItem is one row of acaInsTiInfo.
type AcademyInfoItem struct {
	OfficeCode         string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName         string `json:"ATPT_OFCDC_SC_NM"`
	Zone               string `json:"ADMST_ZONE_NM"`
	Kind               string `json:"ACA_INSTI_SC_NM"`
	Number             string `json:"ACA_ASNUM"`
	Name               string `json:"ACA_NM"`
	EstablishedOn      string `json:"ESTBL_YMD"`
	RegisteredOn       string `json:"REG_YMD"`
	RegistrationStatus string `json:"REG_STTUS_NM"`
	SuspendedFrom      string `json:"CAA_BEGIN_YMD"`
	SuspendedTo        string `json:"CAA_END_YMD"`
	Capacity           Int    `json:"TOFOR_SMTOT"`
	DailyCapacity      Int    `json:"DTM_RCPTN_ABLTY_NMPR_SMTOT"`
	Realm              string `json:"REALM_SC_NM"`
	LessonTrack        string `json:"LE_ORD_NM"`
	LessonCourseList   string `json:"LE_CRSE_LIST_NM"`
	LessonCourse       string `json:"LE_CRSE_NM"`
	TuitionPerPerson   string `json:"PSNBY_THCC_CNTNT"`
	TuitionPublic      YesNo  `json:"THCC_OTHBC_YN"`
	Dormitory          string `json:"BRHS_ACA_YN"`
	Address            string `json:"FA_RDNMA"`
	AddressDetail      string `json:"FA_RDNDA"`
	ZipCode            string `json:"FA_RDNZC"`
	Phone              string `json:"FA_TELNO"`
	LoadedAt           string `json:"LOAD_DTM"`
}
