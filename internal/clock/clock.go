package clock

import (
	"fmt"
	"time"
)

// Clock resolves "now" in the recipient's fixed UTC offset and renders
// calendar-day strings in Russian. The rest of the pipeline never calls
// time.Now directly so tests can pin the moment.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(utcOffsetHours int) *Clock {
	name := fmt.Sprintf("UTC%+d", utcOffsetHours)
	return &Clock{
		loc: time.FixedZone(name, utcOffsetHours*3600),
		now: time.Now,
	}
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Russian month names in genitive case, as they appear after a day number.
var monthsRu = [...]string{
	"января", "февраля", "марта", "апреля",
	"мая", "июня", "июля", "августа",
	"сентября", "октября", "ноября", "декабря",
}

var daysRu = [...]string{
	"Воскресенье", "Понедельник", "Вторник", "Среда",
	"Четверг", "Пятница", "Суббота",
}

// DisplayDate renders t as "Понедельник, 2 января 2026".
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d",
		daysRu[t.Weekday()], t.Day(), monthsRu[t.Month()-1], t.Year())
}

// DayPart names the part of day for free-text context: before 12 it is
// morning, before 18 afternoon, otherwise evening.
func DayPart(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "утро"
	case h < 18:
		return "день"
	default:
		return "вечер"
	}
}
