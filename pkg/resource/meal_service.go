package resource

import (
	"strings"
	"time"
)

// Meal codes used by MMEAL_SC_CODE.
const (
	MealBreakfast = "1" // 조식
	MealLunch     = "2" // 중식
	MealDinner    = "3" // 석식
)

// MealServiceParams queries the meal menus of one school.
type MealServiceParams struct {
	OfficeCode string `url:"ATPT_OFCDC_SC_CODE"`
	SchoolCode string `url:"SD_SCHUL_CODE"`
	MealCode   string `url:"MMEAL_SC_CODE,omitempty"`
	Date       string `url:"MLSV_YMD,omitempty"`
	FromDate   string `url:"MLSV_FROM_YMD,omitempty"`
	ToDate     string `url:"MLSV_TO_YMD,omitempty"`
}

// NewMealServiceParams returns params for the given office and school.
func NewMealServiceParams(officeCode, schoolCode string) MealServiceParams {
	return MealServiceParams{OfficeCode: officeCode, SchoolCode: schoolCode}
}

// Resource implements Params.
func (MealServiceParams) Resource() Resource { return MealService }

// On restricts the query to a single day.
func (p MealServiceParams) On(day time.Time) MealServiceParams {
	p.Date = FormatDate(day)
	return p
}

// From sets the first day of the query range.
func (p MealServiceParams) From(day time.Time) MealServiceParams {
	p.FromDate = FormatDate(day)
	return p
}

// To sets the last day of the query range.
func (p MealServiceParams) To(day time.Time) MealServiceParams {
	p.ToDate = FormatDate(day)
	return p
}

// MealServiceItem is one meal of mealServiceDietInfo.
type MealServiceItem struct {
	OfficeCode string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName string `json:"ATPT_OFCDC_SC_NM"`
	SchoolCode string `json:"SD_SCHUL_CODE"`
	SchoolName string `json:"SCHUL_NM"`
	MealCode   string `json:"MMEAL_SC_CODE"`
	MealName   string `json:"MMEAL_SC_NM"`
	Date       string `json:"MLSV_YMD"`
	Servings   Int    `json:"MLSV_FGR"`
	DishNames  string `json:"DDISH_NM"`
	Origin     string `json:"ORPLC_INFO"`
	Calories   string `json:"CAL_INFO"`
	Nutrition  string `json:"NTR_INFO"`
	FromDate   string `json:"MLSV_FROM_YMD"`
	ToDate     string `json:"MLSV_TO_YMD"`
	LoadedAt   string `json:"LOAD_DTM"`
}

// Dishes splits DDISH_NM, which separates dishes with <br/>.
func (m MealServiceItem) Dishes() []string {
	var dishes []string
	for _, d := range strings.Split(m.DishNames, "<br/>") {
		if d = strings.TrimSpace(d); d != "" {
			dishes = append(dishes, d)
		}
	}
	return dishes
}
