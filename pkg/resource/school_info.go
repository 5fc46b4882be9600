package resource

// SchoolInfoParams filters the school listing. Every field is optional.
type SchoolInfoParams struct {
	OfficeCode string `url:"ATPT_OFCDC_SC_CODE,omitempty"` // 시도교육청코드
	SchoolCode string `url:"SD_SCHUL_CODE,omitempty"`      // 행정표준코드
	SchoolName string `url:"SCHUL_NM,omitempty"`           // 학교명
	SchoolKind string `url:"SCHUL_KND_SC_NM,omitempty"`    // 학교종류명
	Location   string `url:"LCTN_SC_NM,omitempty"`         // 시도명
	Foundation string `url:"FOND_SC_NM,omitempty"`         // 설립명
}

// SchoolInfoByCode looks up a single school by its administrative code.
func SchoolInfoByCode(schoolCode string) SchoolInfoParams {
	return SchoolInfoParams{SchoolCode: schoolCode}
}

// Resource implements Params.
func (SchoolInfoParams) Resource() Resource { return SchoolInfo }

// SchoolInfoItem is one row of schoolInfo.
type SchoolInfoItem struct {
	OfficeCode           string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName           string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode           string `json:"SD_SCHUL_CODE"`
	SchoolName           string `json:"SCHUL_NM"`
	EnglishName          string `json:"ENG_SCHUL_NM"`
	SchoolKind           string `json:"SCHUL_KND_SC_NM"`
	Location             string `json:"LCTN_SC_NM"`
	Jurisdiction         string `json:"JU_ORG_NM"`
	Foundation           string `json:"FOND_SC_NM"`
	ZipCode              string `json:"ORG_RDNZC"`
	Address              string `json:"ORG_RDNMA"`
	AddressDetail        string `json:"ORG_RDNDA"`
	Phone                string `json:"ORG_TELNO"`
	Homepage             string `json:"HMPG_ADRES"`
	Coeducation          string `json:"COEDU_SC_NM"` // 남 | 여 | 남여공학
	Fax                  string `json:"ORG_FAXNO"`
	HighSchoolKind       string `json:"HS_SC_NM"`
	IndustrySpecialClass YesNo  `json:"INDST_SPECL_CCCCL_EXST_YN"`
	HighSchoolTrack      string `json:"HS_GNRL_BUSNS_SC_NM"`
	SpecialPurposeTrack  string `json:"SPCLY_PURPS_HS_ORD_NM"`
	AdmissionPeriod      string `json:"ENE_BFE_SEHF_SC_NM"` // 전기 | 후기 | 전후기
	DayNight             string `json:"DGHT_SC_NM"`         // 주간 | 야간 | 주야간
	FoundedOn            string `json:"FOND_YMD"`
	Anniversary          string `json:"FOAS_MEMRD"`
	LoadedAt             string `json:"LOAD_DTM"`
}
