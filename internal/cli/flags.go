package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/insights/internal/campaign"
	"github.com/rileyhilliard/insights/internal/errors"
)

// MinRefreshInterval keeps real-time refresh from spinning.
const MinRefreshInterval = time.Second

// ParseInterval parses a refresh interval flag. A bare number is read as
// seconds. Returns zero when the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return 0, nil
	}

	var d time.Duration
	if secs, err := strconv.Atoi(flag); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		d, err = time.ParseDuration(flag)
		if err != nil {
			return 0, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
				"Try something like 5, 5s, or 1m.")
		}
	}

	if d < MinRefreshInterval {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", flag),
			"The minimum refresh interval is 1s.")
	}
	if d%time.Second != 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is not a whole number of seconds", flag),
			"Use whole seconds, like 5s or 90s.")
	}
	return d, nil
}

// ParseAsOf parses a YYYY-MM-DD reference date. Returns the zero time when
// the flag is empty.
func ParseAsOf(flag string) (time.Time, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(campaign.DateLayout, flag, time.Local)
	if err != nil {
		return time.Time{}, errors.WrapWithCode(err, errors.ErrFilter,
			fmt.Sprintf("'%s' is not a valid date", flag),
			"Use the YYYY-MM-DD format, like 2024-06-30.")
	}
	return t, nil
}

// ParsePosition parses a 1-based layout position as typed on the command
// line and returns the 0-based index.
func ParsePosition(arg string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > count {
		return 0, errors.New(errors.ErrLayout,
			fmt.Sprintf("'%s' is not a valid position", arg),
			fmt.Sprintf("Use a number from 1 to %d.", count))
	}
	return n - 1, nil
}
