package handlers

import (
	"strconv"
	"strings"
	"time"
)

func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func pagesFromTotal(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	p := int((total + int64(size) - 1) / int64(size))
	if p < 1 {
		return 1
	}
	return p
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func fmtDateTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDateTime(*t)
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func i64Str(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}
