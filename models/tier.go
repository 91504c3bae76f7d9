package models

// PathParam ties a route parameter to the locations column it constrains.
type PathParam struct {
	Name   string       // route parameter name, e.g. "countryId"
	Column string       // locations column holding that id, e.g. "country_id"
	Tier   LocationType // tier the id must resolve to
}

// TierSpec describes one level of the hierarchy: its labels, route shape,
// parent/child links and the column dependents use to cache its id. The
// table below drives handlers, validation, the deletion guard and the
// cascade, so no code dispatches on a tier by inspecting types at runtime.
type TierSpec struct {
	Type         LocationType
	Label        string       // "SubRegion"
	RouteSegment string       // "subregions"
	IDParam      string       // own route parameter ("subRegionId")
	LinkColumn   string       // column on dependents caching this tier's id ("sub_region_id")
	Parent       LocationType // empty for country
	Child        LocationType // empty for building
	ChildLabel   string       // activeRelations summary name ("buildings"; "facilities" for building)
	Ancestors    []PathParam  // outermost-first, excluding the tier itself
}

// TierOrder lists the tiers outermost-first.
var TierOrder = []LocationType{TypeCountry, TypeState, TypeRegion, TypeSubRegion, TypeBuilding}

// Tiers is the dispatch table for the five hierarchy levels.
var Tiers = map[LocationType]TierSpec{
	TypeCountry: {
		Type:         TypeCountry,
		Label:        "Country",
		RouteSegment: "countries",
		IDParam:      "countryId",
		LinkColumn:   "country_id",
		Child:        TypeState,
		ChildLabel:   "states",
	},
	TypeState: {
		Type:         TypeState,
		Label:        "State",
		RouteSegment: "states",
		IDParam:      "stateId",
		LinkColumn:   "state_id",
		Parent:       TypeCountry,
		Child:        TypeRegion,
		ChildLabel:   "regions",
		Ancestors: []PathParam{
			{Name: "countryId", Column: "country_id", Tier: TypeCountry},
		},
	},
	TypeRegion: {
		Type:         TypeRegion,
		Label:        "Region",
		RouteSegment: "regions",
		IDParam:      "regionId",
		LinkColumn:   "region_id",
		Parent:       TypeState,
		Child:        TypeSubRegion,
		ChildLabel:   "subregions",
		Ancestors: []PathParam{
			{Name: "countryId", Column: "country_id", Tier: TypeCountry},
			{Name: "stateId", Column: "state_id", Tier: TypeState},
		},
	},
	TypeSubRegion: {
		Type:         TypeSubRegion,
		Label:        "SubRegion",
		RouteSegment: "subregions",
		IDParam:      "subRegionId",
		LinkColumn:   "sub_region_id",
		Parent:       TypeRegion,
		Child:        TypeBuilding,
		ChildLabel:   "buildings",
		Ancestors: []PathParam{
			{Name: "countryId", Column: "country_id", Tier: TypeCountry},
			{Name: "stateId", Column: "state_id", Tier: TypeState},
			{Name: "regionId", Column: "region_id", Tier: TypeRegion},
		},
	},
	TypeBuilding: {
		Type:         TypeBuilding,
		Label:        "Building",
		RouteSegment: "buildings",
		IDParam:      "buildingId",
		LinkColumn:   "building_id",
		Parent:       TypeSubRegion,
		ChildLabel:   "facilities",
		Ancestors: []PathParam{
			{Name: "countryId", Column: "country_id", Tier: TypeCountry},
			{Name: "stateId", Column: "state_id", Tier: TypeState},
			{Name: "regionId", Column: "region_id", Tier: TypeRegion},
			{Name: "subRegionId", Column: "sub_region_id", Tier: TypeSubRegion},
		},
	},
}
