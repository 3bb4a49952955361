package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// ErrInvalidWeekday неизвестное название дня недели
var ErrInvalidWeekday = errors.New("domain: invalid weekday")

// Weekday день недели, индекс в WeeklySchedule (0 = понедельник)
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek количество дней в расписании
const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// AllWeekdays дни недели в порядке расписания
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday конвертирует название дня ("monday".."sunday") в Weekday
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// WeekdayOf возвращает день недели календарной даты
func WeekdayOf(date time.Time) Weekday {
	// time.Weekday: воскресенье = 0
	return Weekday((int(date.Weekday()) + 6) % DaysInWeek)
}

// DateIn возвращает полночь календарного дня date в часовом поясе loc
// Берутся год, месяц и день по часам самой date, без пересчёта момента времени
func DateIn(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsValid true, если значение входит в перечисление
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// TimeRange полуоткрытый интервал времени суток [Start, End)
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Bounds возвращает границы интервала в минутах от начала суток
// ok == false, если интервал невалиден (пустые/непарсящиеся значения или Start >= End)
func (r TimeRange) Bounds() (start, end int, ok bool) {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0, 0, false
	}
	start, err := r.Start.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err = r.End.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// IsValid true, если Start < End
func (r TimeRange) IsValid() bool {
	_, _, ok := r.Bounds()
	return ok
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// DayAvailability расписание мастера на один день недели
// Если Enabled == false, Slots игнорируются
type DayAvailability struct {
	Day     Weekday
	Enabled bool
	Slots   []TimeRange
}

// OpenRanges возвращает интервалы, доступные для записи
func (d DayAvailability) OpenRanges() []TimeRange {
	if !d.Enabled {
		return nil
	}
	return d.Slots
}

// WeeklySchedule недельное расписание мастера, индекс Weekday
// Отсутствующий день хранится нулевым значением (выходной)
type WeeklySchedule [DaysInWeek]DayAvailability

// NewWeeklySchedule собирает расписание из набора дней
// Дни, которых нет в days, остаются выходными
func NewWeeklySchedule(days []DayAvailability) (WeeklySchedule, error) {
	var week WeeklySchedule
	for _, d := range AllWeekdays {
		week[d].Day = d
	}
	for _, day := range days {
		if !day.Day.IsValid() {
			return WeeklySchedule{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(day.Day))
		}
		week[day.Day] = day
	}
	return week, nil
}

// Day возвращает расписание на день недели; для невалидного значения возвращается выходной
func (w WeeklySchedule) Day(d Weekday) DayAvailability {
	if !d.IsValid() {
		return DayAvailability{Day: d}
	}
	return w[d]
}

// ForDate возвращает расписание на день недели календарной даты
func (w WeeklySchedule) ForDate(date time.Time) DayAvailability {
	return w.Day(WeekdayOf(date))
}

// Days возвращает все 7 дней в порядке недели
func (w WeeklySchedule) Days() []DayAvailability {
	days := make([]DayAvailability, 0, DaysInWeek)
	for _, d := range AllWeekdays {
		day := w[d]
		day.Day = d
		days = append(days, day)
	}
	return days
}
