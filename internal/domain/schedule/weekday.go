package schedule

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/ice-routes/internal/httperr"
	"github.com/BruksfildServices01/ice-routes/internal/models"
)

// colunas de client_route_schedules, indexadas por time.Weekday
var weekdayColumns = [...]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

var weekdayNames = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"miércoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
	"sábado":    time.Saturday,
}

// Column devolve a coluna de agenda do dia da semana.
func Column(d time.Weekday) string {
	return weekdayColumns[d]
}

// ParseWeekday aceita "lunes", "dia_lunes" ou "monday".
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "dia_")

	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	for d, col := range weekdayColumns {
		if col == s {
			return time.Weekday(d), nil
		}
	}
	return 0, httperr.ErrBusiness("invalid_weekday")
}

// Days é o conjunto de dias fixos de uma rota do cliente.
type Days struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

func AllDays() Days {
	return Days{true, true, true, true, true, true, true}
}

func (d Days) Any() bool {
	return d.Monday || d.Tuesday || d.Wednesday || d.Thursday ||
		d.Friday || d.Saturday || d.Sunday
}

func (d Days) On(w time.Weekday) bool {
	switch w {
	case time.Monday:
		return d.Monday
	case time.Tuesday:
		return d.Tuesday
	case time.Wednesday:
		return d.Wednesday
	case time.Thursday:
		return d.Thursday
	case time.Friday:
		return d.Friday
	case time.Saturday:
		return d.Saturday
	default:
		return d.Sunday
	}
}

func DaysOf(s models.ClientRouteSchedule) Days {
	return Days{
		Monday:    s.Monday,
		Tuesday:   s.Tuesday,
		Wednesday: s.Wednesday,
		Thursday:  s.Thursday,
		Friday:    s.Friday,
		Saturday:  s.Saturday,
		Sunday:    s.Sunday,
	}
}
