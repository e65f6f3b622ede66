package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Mexico_City"

// DateLayout é o formato das datas trafegadas na API e gravadas em colunas date.
const DateLayout = "2006-01-02"

var business atomic.Value

func init() {
	business.Store(DefaultTimezone)
}

// Configure define o fuso do negócio. Valores inválidos são ignorados.
func Configure(tz string) {
	if IsValid(tz) {
		business.Store(tz)
	}
}

func Business() string {
	return business.Load().(string)
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(Business()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// --------------------------------------------------
// Dia civil
// --------------------------------------------------

// DateOf devolve o dia civil de t (no fuso de t) como meia-noite UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DateOf(Now())
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
