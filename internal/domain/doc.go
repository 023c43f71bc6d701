// Package domain models warehouse facilities and the safety index computed
// for them.
//
// # Documents
//
// Facilities are stored as schemaless documents keyed by an opaque id. Field
// names follow the upstream facility system and are mixed-case
// ("Security_employees", "NumberOfDocks", "CCTV1".."CCTV5"); see the Field*
// constants. [DecodeFacility] turns a document into a [FacilityRecord] and
// never fails:
//
//	number fields   absent, null, non-numeric, NaN or Inf  →  0
//	date fields     "YYYY-MM-DD", RFC 3339 or native time  →  value, else nil
//	status          absent or null                         →  StatusMissing
//
// A missing status scores as "Operational" but is reported as null.
//
// # Scoring Model
//
// Each scan first computes [NormalizationStats] over the whole fleet: the
// maximum of each raw metric, raised to a floor (CCTV 5, security staff 10,
// days since maintenance 365, size 100000 sq ft, docks 10) so small fleets
// never divide by zero.
//
// Eight sub-scores are then computed per facility and clamped to [0,1]:
//
//	CCTV         total cameras / MaxCCTV                      weight 0.25
//	Security     security employees / MaxSecurityEmployees    weight 0.20
//	Maintenance  1 - days since last / MaxDaysSince           weight 0.15
//	Efficiency   efficiency_score / 100                       weight 0.15
//	Automation   automation_level                             weight 0.10
//	Status       Operational 1, Under Maintenance 0.5, else 0 weight 0.10
//	Size         1 - size_sqft / MaxFacilitySize              weight 0.03
//	Docks        1 - docks / MaxDocks                         weight 0.02
//
// The weighted sum times 100 is the base index. A city adjustment of
// (rank/100 - 0.5) * 20 points is added, where rank comes from [CityRanks]
// and defaults to 50 for unknown cities. The result is clamped to [0,100]
// and rounded once to two decimals. See [Scorer.Breakdown].
//
// Maintenance recency counts whole calendar days; time of day is ignored and
// a future date yields a negative count, which clamps the sub-score to 1.
//
// # Coordinates
//
// Facilities without a position can have one resolved from their city name
// through a [Geocoder]. Resolution only affects scan output and degrades
// silently when the geocoder fails. See [ResolveCoordinates].
package domain
