package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrettyTimeNoZeroPadding(t *testing.T) {
	at := time.Date(2024, time.March, 7, 9, 5, 4, 0, time.UTC)
	assert.Equal(t, "2024/3/7 9:5:4", PrettyTime(at))
}

func TestPrettyTimeDoubleDigits(t *testing.T) {
	at := time.Date(2024, time.December, 31, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, "2024/12/31 23:59:58", PrettyTime(at))
}
