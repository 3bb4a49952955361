package slots

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// WarningKind тип замечания к расписанию
type WarningKind string

const (
	// WarningInvalidRange интервал с началом не раньше конца или с пустым/нечитаемым временем
	WarningInvalidRange WarningKind = "invalid_range"

	// WarningOverlappingRanges интервалы одного дня пересекаются
	WarningOverlappingRanges WarningKind = "overlapping_ranges"
)

// Warning замечание к расписанию мастера
// Не является ошибкой: такие интервалы при расчёте слотов пропускаются или объединяются
type Warning struct {
	Day     domain.Weekday
	Kind    WarningKind
	Range   domain.TimeRange
	Other   *domain.TimeRange // Второй интервал для WarningOverlappingRanges
	Message string
}

// Inspect проверяет недельное расписание и возвращает замечания по каждому дню
// Проверяются и выключенные дни: интервалы в них сохранены и станут активны при включении дня
func Inspect(week domain.WeeklySchedule) []Warning {
	warnings := make([]Warning, 0)

	for _, d := range domain.AllWeekdays {
		day := week.Day(d)

		type bounded struct {
			r          domain.TimeRange
			start, end int
		}
		valid := make([]bounded, 0, len(day.Slots))

		for _, r := range day.Slots {
			start, end, ok := r.Bounds()
			if !ok {
				warnings = append(warnings, Warning{
					Day:     d,
					Kind:    WarningInvalidRange,
					Range:   r,
					Message: fmt.Sprintf("%s: интервал %s некорректен и не используется при записи", d, r),
				})
				continue
			}
			valid = append(valid, bounded{r: r, start: start, end: end})
		}

		sort.SliceStable(valid, func(i, j int) bool {
			return valid[i].start < valid[j].start
		})

		// Сравниваем со "самым длинным" интервалом из предыдущих, чтобы поймать вложенные
		for i := 1; i < len(valid); i++ {
			widest := valid[0]
			for _, prev := range valid[1:i] {
				if prev.end > widest.end {
					widest = prev
				}
			}
			if widest.end > valid[i].start {
				other := widest.r
				warnings = append(warnings, Warning{
					Day:     d,
					Kind:    WarningOverlappingRanges,
					Range:   valid[i].r,
					Other:   &other,
					Message: fmt.Sprintf("%s: интервалы %s и %s пересекаются", d, other, valid[i].r),
				})
			}
		}
	}

	return warnings
}
