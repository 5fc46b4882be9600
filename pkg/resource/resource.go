// Package resource defines the NEIS open API datasets: their wire identities,
// typed query parameters and row record types.
package resource

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Resource identifies one NEIS dataset. The value is both the URL path segment
// under /hub/ and the tag of the response envelope.
type Resource string

// Known resources.
const (
	SchoolInfo      Resource = "schoolInfo"
	ClassInfo       Resource = "classInfo"
	SchoolMajorInfo Resource = "schoolMajorinfo"
	SchoolAflcoInfo Resource = "schulAflcoinfo"
	SchoolSchedule  Resource = "SchoolSchedule"
	ElsTimetable    Resource = "elsTimetable"
	MisTimetable    Resource = "misTimetable"
	HisTimetable    Resource = "hisTimetable"
	SpsTimetable    Resource = "spsTimetable"
	ClassRoomInfo   Resource = "tiClrminfo"
	AcademyInfo     Resource = "acaInsTiInfo"
	MealService     Resource = "mealServiceDietInfo"
)

// All returns every known resource in a stable order.
func All() []Resource {
	return []Resource{
		SchoolInfo,
		ClassInfo,
		SchoolMajorInfo,
		SchoolAflcoInfo,
		SchoolSchedule,
		ElsTimetable,
		MisTimetable,
		HisTimetable,
		SpsTimetable,
		ClassRoomInfo,
		AcademyInfo,
		MealService,
	}
}

// Parse looks up a resource by its wire name.
func Parse(name string) (Resource, error) {
	for _, r := range All() {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource %q", name)
}

// Path returns the URL path segment used for requests to this resource.
func (r Resource) Path() string {
	return string(r)
}

// Title returns the Korean dataset name shown on the NEIS portal.
func (r Resource) Title() string {
	return titles[r]
}

var titles = map[Resource]string{
	SchoolInfo:      "학교기본정보",
	ClassInfo:       "학급정보",
	SchoolMajorInfo: "학교학과정보",
	SchoolAflcoInfo: "학교계열정보",
	SchoolSchedule:  "학사일정",
	ElsTimetable:    "초등학교시간표",
	MisTimetable:    "중학교시간표",
	HisTimetable:    "고등학교시간표",
	SpsTimetable:    "특수학교시간표",
	ClassRoomInfo:   "시간표강의실정보",
	AcademyInfo:     "학원교습소정보",
	MealService:     "급식식단정보",
}

// String implements fmt.Stringer.
func (r Resource) String() string {
	return string(r)
}

// Params is implemented by every typed query parameter struct.
type Params interface {
	Resource() Resource
}

// Encode serializes params into a query string. Required fields are always
// present, empty optional fields are omitted. Keys are sorted.
func Encode(p Params) (string, error) {
	values, err := Values(p)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// Values serializes params into url.Values using their `url` struct tags.
func Values(p Params) (url.Values, error) {
	if p == nil {
		return url.Values{}, nil
	}
	values, err := query.Values(p)
	if err != nil {
		return nil, fmt.Errorf("encode %s params: %w", p.Resource(), err)
	}
	return values, nil
}
