package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init makes validator report json field names (documentNumber, not DocumentNumber).
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}
}

func jsonTagName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "" {
		tag = fld.Tag.Get("form")
	}
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
