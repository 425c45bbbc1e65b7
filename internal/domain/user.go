package domain

// Preferences holds a user's stated taste profile.
type Preferences struct {
	Genres []string `json:"genres"`
}

// User is a demo identity record.
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// Session is an authenticated demo login.
type Session struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Recommendation scores one piece of content for one user.
type Recommendation struct {
	UserID      string  `json:"userId"`
	ContentID   string  `json:"contentId"`
	ContentType string  `json:"contentType"` // movie or show
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

// StreamMetrics tracks playback quality counters for one session.
type StreamMetrics struct {
	BufferingEvents int     `json:"bufferingEvents"`
	QualityChanges  int     `json:"qualityChanges"`
	AverageBitrate  float64 `json:"averageBitrate"`
}

// StreamSession is one active playback session.
type StreamSession struct {
	SessionID   string        `json:"sessionId"`
	UserID      string        `json:"userId"`
	ContentID   string        `json:"contentId"`
	ContentType string        `json:"contentType"`
	Quality     string        `json:"quality"`
	DeviceType  string        `json:"deviceType"`
	StartTime   string        `json:"startTime"` // RFC 3339
	Metrics     StreamMetrics `json:"metrics"`
}

// ServiceStatus is one node in the platform topology snapshot.
type ServiceStatus struct {
	Service string         `json:"service"`
	Status  string         `json:"status"`
	Counts  map[string]int `json:"counts,omitempty"`
}
