package dexshare

import "time"

// Region selects which Dexcom Share deployment to talk to. The region only
// affects the base host and the application ID; the endpoint paths and wire
// formats are identical everywhere.
type Region string

const (
	RegionUS  Region = "us"
	RegionOUS Region = "ous"
	RegionJP  Region = "jp"
)

const (
	baseURLUS  = "https://share2.dexcom.com/ShareWebServices/Services"
	baseURLOUS = "https://shareous1.dexcom.com/ShareWebServices/Services"
	baseURLJP  = "https://share.dexcom.jp/ShareWebServices/Services"

	applicationIDUS = "d89443d2-327c-4a6f-89e5-496bbb0317db"
	applicationIDJP = "d8665ade-9673-4e27-9ff6-92db4ce13d13"
)

var baseURLs = map[Region]string{
	RegionUS:  baseURLUS,
	RegionOUS: baseURLOUS,
	RegionJP:  baseURLJP,
}

var applicationIDs = map[Region]string{
	RegionUS:  applicationIDUS,
	RegionOUS: applicationIDUS,
	RegionJP:  applicationIDJP,
}

const (
	authenticateEndpoint = "General/AuthenticatePublisherAccount"
	loginEndpoint        = "General/LoginPublisherAccountById"
	readingsEndpoint     = "Publisher/ReadPublisherLatestGlucoseValues"
	verifySerialEndpoint = "Publisher/CheckMonitoredReceiverAssignmentStatus"
)

const (
	// MaxMinutes is the widest lookback window the readings endpoint accepts
	// (one day).
	MaxMinutes = 1440
	// MaxCount is the largest reading count the readings endpoint accepts
	// (one reading per five minutes for a day).
	MaxCount = 288

	// currentFetchMinutes is the server-side window used when asking for the
	// current reading; currentMaxAge is the stricter local recency bound a
	// reading must satisfy to count as "current".
	currentFetchMinutes = 10
	currentMaxAge       = 6 * time.Minute
)

// MmolLFactor converts mg/dL to mmol/L.
const MmolLFactor = 0.0555

// defaultUUID is the all-zero UUID the Share API hands back instead of a
// proper error on some failure paths. Never a usable account or session ID.
const defaultUUID = "00000000-0000-0000-0000-000000000000"
