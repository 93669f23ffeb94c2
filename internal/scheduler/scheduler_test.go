package scheduler

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testScheduler() *Scheduler {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &Scheduler{logger: logger}
}

func TestParseDailyRunTime(t *testing.T) {
	s := testScheduler()

	assert.Equal(t, "0 2 * * *", s.parseDailyRunTime("02:00"))
	assert.Equal(t, "30 14 * * *", s.parseDailyRunTime("14:30"))
	assert.Equal(t, "5 0 * * *", s.parseDailyRunTime("00:05"))
}

func TestParseDailyRunTimeInvalidFallsBack(t *testing.T) {
	s := testScheduler()

	assert.Equal(t, "0 2 * * *", s.parseDailyRunTime("not-a-time"))
	assert.Equal(t, "0 2 * * *", s.parseDailyRunTime(""))
}
