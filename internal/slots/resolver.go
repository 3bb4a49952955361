// Package slots вычисляет свободные для записи слоты мастера на дату.
//
// Функции пакета чистые: не обращаются к БД и часам, не меняют входные данные
// и безопасны для конкурентного вызова. Некорректные данные расписания
// не приводят к ошибке, а просто сужают результат.
package slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Query параметры вычисления слотов
type Query struct {
	Date                   time.Time // Дата записи (время суток не используется)
	ServiceDurationMinutes int       // Длительность услуги
	Now                    time.Time // Текущий момент, для отсечения прошедших слотов сегодня
	StepMinutes            int       // Шаг сетки слотов; <= 0 означает domain.DefaultSlotStepMinutes
}

func (q Query) step() int {
	if q.StepMinutes <= 0 {
		return domain.DefaultSlotStepMinutes
	}
	return q.StepMinutes
}

// Resolve возвращает отсортированный список времён начала, в которые на дату q.Date
// можно записаться на услугу длительностью q.ServiceDurationMinutes
//
// Слот попадает в результат, если:
//   - день недели открыт и слот целиком помещается в один из валидных интервалов расписания
//   - слот не пересекается ни с одним занимающим бронированием на эту дату
//   - для сегодняшней даты слот начинается строго позже q.Now
func Resolve(week domain.WeeklySchedule, reservations []*domain.Reservation, q Query) []types.TimeString {
	result := make([]types.TimeString, 0)

	duration := q.ServiceDurationMinutes
	if duration <= 0 {
		return result
	}

	// 1. Расписание на день недели; в выходной слотов нет
	day := week.ForDate(q.Date)
	if !day.Enabled {
		return result
	}

	// 2-4. Кандидаты от начала каждого валидного интервала с фиксированным шагом.
	// Пересекающиеся интервалы могут дать одно и то же время, поэтому собираем во множество
	step := q.step()
	candidates := make(map[int]struct{})
	for _, r := range day.OpenRanges() {
		start, end, ok := r.Bounds()
		if !ok {
			continue
		}
		for t := start; t+duration <= end; t += step {
			candidates[t] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return result
	}

	// 5. Занятые интервалы на эту дату
	busy := occupiedIntervals(reservations, q.Date)

	// 6. Для сегодняшней даты отсекаем прошедшее время.
	// Слот начинается в целую минуту, поэтому "строго позже now" равносильно t > минуты now
	nowMinutes := -1
	if !q.Now.IsZero() {
		now := q.Now.In(q.Date.Location())
		if isSameDay(q.Date, now) {
			nowMinutes = now.Hour()*60 + now.Minute()
		}
	}

	starts := make([]int, 0, len(candidates))
	for t := range candidates {
		if t <= nowMinutes {
			continue
		}
		if overlapsAny(t, t+duration, busy) {
			continue
		}
		starts = append(starts, t)
	}

	// 7. По возрастанию
	sort.Ints(starts)

	for _, t := range starts {
		ts, err := types.NewTimeStringFromMinutes(t)
		if err != nil {
			continue
		}
		result = append(result, ts)
	}

	return result
}

// Contains проверяет, что время t присутствует в свежем результате Resolve
// Используется при создании бронирования с тем же шагом, что и при выдаче слотов
func Contains(week domain.WeeklySchedule, reservations []*domain.Reservation, q Query, t types.TimeString) bool {
	target, err := t.Minutes()
	if err != nil {
		return false
	}

	for _, slot := range Resolve(week, reservations, q) {
		m, err := slot.Minutes()
		if err != nil {
			continue
		}
		if m == target {
			return true
		}
		if m > target {
			return false
		}
	}
	return false
}

type interval struct {
	start, end int
}

// occupiedIntervals собирает интервалы занимающих бронирований на дату
// Бронирования на другие даты и с нечитаемым временем пропускаются
func occupiedIntervals(reservations []*domain.Reservation, date time.Time) []interval {
	busy := make([]interval, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || !r.IsOccupying() || r.DurationMinutes <= 0 {
			continue
		}
		if !isSameDay(r.Date, date) {
			continue
		}
		start, err := r.StartTime.Minutes()
		if err != nil {
			continue
		}
		busy = append(busy, interval{start: start, end: start + r.DurationMinutes})
	}
	return busy
}

// overlapsAny проверяет пересечение [start, end) с занятыми интервалами
// Интервалы, которые только соприкасаются границами, не пересекаются
func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
