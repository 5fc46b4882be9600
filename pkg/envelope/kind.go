package envelope

import (
	"encoding/json"

	"github.com/Sternrassler/neis-client/pkg/resource"
)

// Extractor maps a decoded envelope to the total row count reported by the
// server and the rows of this page.
type Extractor[T any] interface {
	Extract(env Envelope) (total int, rows []T)
}

// Kind pairs a resource with its record type. It decodes that resource's
// variant and extracts rows from it; any other variant extracts as (0, nil).
type Kind[T any] struct {
	Resource resource.Resource
}

// Extract implements Extractor.
func (k Kind[T]) Extract(env Envelope) (int, []T) {
	p, ok := env.(*Payload[T])
	if !ok || p.Resource != k.Resource {
		return 0, nil
	}
	return p.Head.TotalCount, p.Body.Row
}

func (k Kind[T]) decode(raw json.RawMessage) (Envelope, error) {
	return decodePayload[T](k.Resource, raw)
}

// One Kind per resource.
var (
	SchoolInfo      = Kind[resource.SchoolInfoItem]{Resource: resource.SchoolInfo}
	ClassInfo       = Kind[resource.ClassInfoItem]{Resource: resource.ClassInfo}
	SchoolMajorInfo = Kind[resource.SchoolMajorInfoItem]{Resource: resource.SchoolMajorInfo}
	SchoolAflcoInfo = Kind[resource.SchoolAflcoInfoItem]{Resource: resource.SchoolAflcoInfo}
	SchoolSchedule  = Kind[resource.SchoolScheduleItem]{Resource: resource.SchoolSchedule}
	ElsTimetable    = Kind[resource.ElsTimetableItem]{Resource: resource.ElsTimetable}
	MisTimetable    = Kind[resource.MisTimetableItem]{Resource: resource.MisTimetable}
	HisTimetable    = Kind[resource.HisTimetableItem]{Resource: resource.HisTimetable}
	SpsTimetable    = Kind[resource.SpsTimetableItem]{Resource: resource.SpsTimetable}
	ClassRoomInfo   = Kind[resource.ClassRoomInfoItem]{Resource: resource.ClassRoomInfo}
	AcademyInfo     = Kind[resource.AcademyInfoItem]{Resource: resource.AcademyInfo}
	MealService     = Kind[resource.MealServiceItem]{Resource: resource.MealService}
)

// variants is the closed set of resource variants Decode accepts.
var variants = map[resource.Resource]func(json.RawMessage) (Envelope, error){
	SchoolInfo.Resource:      SchoolInfo.decode,
	ClassInfo.Resource:       ClassInfo.decode,
	SchoolMajorInfo.Resource: SchoolMajorInfo.decode,
	SchoolAflcoInfo.Resource: SchoolAflcoInfo.decode,
	SchoolSchedule.Resource:  SchoolSchedule.decode,
	ElsTimetable.Resource:    ElsTimetable.decode,
	MisTimetable.Resource:    MisTimetable.decode,
	HisTimetable.Resource:    HisTimetable.decode,
	SpsTimetable.Resource:    SpsTimetable.decode,
	ClassRoomInfo.Resource:   ClassRoomInfo.decode,
	AcademyInfo.Resource:     AcademyInfo.decode,
	MealService.Resource:     MealService.decode,
}

// Registered reports whether Decode knows the variant for r.
func Registered(r resource.Resource) bool {
	_, ok := variants[r]
	return ok
}
