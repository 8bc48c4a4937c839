package models

// ResourceType is a category of bookable asset. Immutable reference data.
type ResourceType struct {
	ID   int    `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Resource is one concrete bookable instance of a resource type.
type Resource struct {
	ID             int    `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	ResourceTypeID int    `bson:"resource_type_id" json:"resourceTypeId"`
	IsBookable     bool   `bson:"is_bookable" json:"isBookable"`
}

// Fixed resource type enumeration.
const (
	ResourceTypeDesk        = 1
	ResourceTypeMeetingRoom = 2
	ResourceTypeVRHeadset   = 3
	ResourceTypeAIServer    = 4
)

var resourceTypeNames = map[int]string{
	ResourceTypeDesk:        "drop-in desk",
	ResourceTypeMeetingRoom: "meeting room",
	ResourceTypeVRHeadset:   "VR headset",
	ResourceTypeAIServer:    "AI server",
}

// ResourceTypeName returns the display name for a resource type id,
// falling back to a generic label for unknown ids.
func ResourceTypeName(resourceTypeID int) string {
	if name, ok := resourceTypeNames[resourceTypeID]; ok {
		return name
	}
	return "resource"
}

// ResourceTypes returns the fixed type enumeration in id order.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		{ID: ResourceTypeDesk, Name: resourceTypeNames[ResourceTypeDesk]},
		{ID: ResourceTypeMeetingRoom, Name: resourceTypeNames[ResourceTypeMeetingRoom]},
		{ID: ResourceTypeVRHeadset, Name: resourceTypeNames[ResourceTypeVRHeadset]},
		{ID: ResourceTypeAIServer, Name: resourceTypeNames[ResourceTypeAIServer]},
	}
}
