package httpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPruneSessions(t *testing.T) {
	d := &dailyServer{sessions: map[string]*dailySession{
		"u1|2026-10-18": {UserID: "u1", Date: "2026-10-18"},
		"u2|2026-10-18": {UserID: "u2", Date: "2026-10-18"},
		"u1|2026-10-19": {UserID: "u1", Date: "2026-10-19"},
	}}

	assert.Equal(t, 2, d.pruneSessions("2026-10-19"))
	assert.Len(t, d.sessions, 1)
	assert.Contains(t, d.sessions, "u1|2026-10-19")
	assert.Zero(t, d.pruneSessions("2026-10-19"))
}
