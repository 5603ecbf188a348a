package stats

import "time"

type sessionInfo struct {
	startTime time.Time
	result    string
}

func newSessionInfo() *sessionInfo {
	return &sessionInfo{
		startTime: time.Now(),
		result:    TagResultOK,
	}
}
