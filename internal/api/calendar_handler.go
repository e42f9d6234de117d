package api

import (
	"alcyxob/gym-tally/internal/calendar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// clock is the source of "today" for requests that omit a date.
var clock = time.Now

// parseDateQuery reads the optional ?date=YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context) (time.Time, bool) {
	return parseDate(c, c.Query("date"))
}

func parseDate(c *gin.Context, s string) (time.Time, bool) {
	day, err := calendar.ParseDate(s, clock())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return day, true
}

func formatDay(t time.Time) string {
	return calendar.FormatDate(t)
}

func weekBoundsStrings(day time.Time) (start, end string) {
	s, e := calendar.WeekBounds(day)
	return calendar.FormatDate(s), calendar.FormatDate(e)
}

type WeekResponse struct {
	Date      string `json:"date"`
	Week      string `json:"week"`
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
}

// GetWeek returns the Monday..Sunday window used for weekly caps.
func GetWeek(c *gin.Context) {
	day, ok := parseDateQuery(c)
	if !ok {
		return
	}
	start, end := weekBoundsStrings(day)
	c.JSON(http.StatusOK, WeekResponse{
		Date:      formatDay(day),
		Week:      calendar.WeekOf(day).String(),
		WeekStart: start,
		WeekEnd:   end,
	})
}

type CompetitionDateResponse struct {
	Date           string `json:"date"`
	Valid          bool   `json:"valid"`
	SecondSaturday string `json:"secondSaturday"` // Of the same month
}

// GetCompetitionDate validates a proposed competition date.
func GetCompetitionDate(c *gin.Context) {
	day, ok := parseDateQuery(c)
	if !ok {
		return
	}
	second := time.Date(day.Year(), day.Month(), calendar.SecondSaturday(day.Year(), day.Month()), 0, 0, 0, 0, time.UTC)
	c.JSON(http.StatusOK, CompetitionDateResponse{
		Date:           formatDay(day),
		Valid:          calendar.IsSecondSaturday(day),
		SecondSaturday: formatDay(second),
	})
}
