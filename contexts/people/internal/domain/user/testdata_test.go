package user_test

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	userName  = gofakeit.Name()
	userEmail = gofakeit.Email()

	fixedTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time {
	return fixedTime
}
