package usecase

import (
	"log/slog"
	"time"
)

// Kite のアクセストークンは毎朝 6:00 (IST) に失効する。
const expiryHour = 6

var kolkata = loadKolkata()

func loadKolkata() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		slog.Warn("tzdata unavailable, using fixed IST offset", "error", err)
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Kolkata returns the Asia/Kolkata location used for token expiry and reminders.
func Kolkata() *time.Location {
	return kolkata
}

// LastExpiry は now 以前で直近の午前6時（インド時間）を返します。
func LastExpiry(now time.Time) time.Time {
	local := now.In(kolkata)
	expiry := time.Date(local.Year(), local.Month(), local.Day(), expiryHour, 0, 0, 0, kolkata)
	if local.Before(expiry) {
		expiry = expiry.AddDate(0, 0, -1)
	}
	return expiry
}

// NextExpiry は now より後の最初の午前6時（インド時間）を返します。
func NextExpiry(now time.Time) time.Time {
	return LastExpiry(now).AddDate(0, 0, 1)
}

// TimeUntilNextExpiry returns how long the current token stays valid.
func TimeUntilNextExpiry(now time.Time) time.Duration {
	return NextExpiry(now).Sub(now)
}
