package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	DateLayout       = "2006-01-02"
	MinPersonNameLen = 2
	MaxPersonNameLen = 100
)

var (
	phonePattern     = regexp.MustCompile(`^\+?[0-9(][0-9\s\-().]{6,19}$`)
	docNumberPattern = regexp.MustCompile(`^[A-Za-z0-9\-]{4,20}$`)
	platePattern     = regexp.MustCompile(`^[A-Za-z0-9\- ]{4,10}$`)
)

// Init registers the custom rules on gin's validator. Call once at startup,
// after apperror.Init.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

func Register(v *validator.Validate) {
	_ = v.RegisterValidation("phone", isPhone)
	_ = v.RegisterValidation("person_name", isPersonName)
	_ = v.RegisterValidation("docnumber", isDocNumber)
	_ = v.RegisterValidation("plate", isPlate)
	_ = v.RegisterValidation("isodate", isISODate)
	_ = v.RegisterValidation("pastdate", isPastDate)
}

// IsPhone accepts international numbers: optional +, digits, spaces, dashes,
// dots and parentheses, 7 to 20 characters.
func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// IsPersonName requires letters (accents allowed), spaces, apostrophes or
// hyphens, between MinPersonNameLen and MaxPersonNameLen runes.
func IsPersonName(s string) bool {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < MinPersonNameLen || n > MaxPersonNameLen {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' && r != '\'' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

func isPhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func isPersonName(fl validator.FieldLevel) bool {
	return IsPersonName(fl.Field().String())
}

func isDocNumber(fl validator.FieldLevel) bool {
	return docNumberPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func isPlate(fl validator.FieldLevel) bool {
	return platePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func isPastDate(fl validator.FieldLevel) bool {
	t, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil && t.Before(time.Now())
}
