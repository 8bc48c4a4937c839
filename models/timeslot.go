package models

import "strings"

// CanonicalTimeSlots are the six bookable two-hour bands of a day, in
// canonical "HH-HH" form.
var CanonicalTimeSlots = []string{
	"08-10", "10-12", "12-14", "14-16", "16-18", "18-20",
}

// NormalizeTimeSlot converts any accepted slot spelling to the canonical
// form, e.g. both "08:00-10:00" and "08-10" become "08-10". Input that is
// not a two-part hyphenated band is trimmed and returned unchanged.
//
// Every comparison, storage and uniqueness check must go through this;
// two spellings of the same slot must never be treated as distinct.
func NormalizeTimeSlot(timeSlot string) string {
	parts := strings.Split(timeSlot, "-")
	if len(parts) != 2 {
		return strings.TrimSpace(timeSlot)
	}

	normalizePart := func(p string) string {
		p = strings.TrimSpace(p)
		// remove minutes if present (":00") or any ':'
		p = strings.ReplaceAll(p, ":00", "")
		p = strings.ReplaceAll(p, ":", "")
		return p
	}

	return normalizePart(parts[0]) + "-" + normalizePart(parts[1])
}

// IsValidTimeSlot reports whether the slot normalizes to one of the six
// canonical bands.
func IsValidTimeSlot(timeSlot string) bool {
	normalized := NormalizeTimeSlot(timeSlot)
	for _, slot := range CanonicalTimeSlots {
		if slot == normalized {
			return true
		}
	}
	return false
}
