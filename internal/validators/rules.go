package validators

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	hhmmRe         = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	contribuinteRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{1,63}$`)
)

// Register installs the custom tags used by request and input structs:
// hhmm, isodate, contribuinte and weekday.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"hhmm":         IsHHMM,
		"isodate":      IsISODate,
		"contribuinte": IsContribuinte,
		"weekday":      IsWeekday,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// New returns a validator with the custom tags installed.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

func IsHHMM(fl validator.FieldLevel) bool {
	return hhmmRe.MatchString(fl.Field().String())
}

func IsISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	d, err := time.Parse("2006-01-02", s)
	return err == nil && d.Format("2006-01-02") == s
}

func IsContribuinte(fl validator.FieldLevel) bool {
	return contribuinteRe.MatchString(fl.Field().String())
}

func IsWeekday(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 0 && n <= 6
}
