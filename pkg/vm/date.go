package vm

import (
	"time"
)

// DateObjectInfo is the payload of a date-kind object. Property access
// on dates is entirely ordinary; only the timestamp payload and its
// string rendering are special.
type DateObjectInfo struct {
	Time time.Time
}

// NewDate allocates a date-kind object with its prototype link on the
// registry's Date prototype.
func NewDate(alloc Allocator, protos *Prototypes, t time.Time) Value {
	info := ObjectInfo{
		kind:     KindDate,
		property: map[string]Property{},
		date:     &DateObjectInfo{Time: t},
	}
	obj := alloc.AllocObject(info)
	obj.SetPrototype(protos.Date)
	return objectValue(obj)
}
