package constants

import "time"

// Source platform names as stored in the source_platform column and accepted
// by the ?source= filter and scrape requests.
const (
	SourceRemotive  = "remotive"
	SourceRemoteOK  = "remoteok"
	SourceJobicy    = "jobicy"
	SourceArbeitnow = "arbeitnow"
)

const (
	// HTTPClientTimeout bounds every outbound request to a job board API.
	HTTPClientTimeout = 30 * time.Second

	// UserAgent is sent on every outbound request; some boards reject the
	// Go default.
	UserAgent = "JobFeedApp/1.0"

	// MaxPages caps pagination for sources that page their responses.
	MaxPages = 3
)
