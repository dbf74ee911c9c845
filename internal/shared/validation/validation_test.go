package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestIsPhone(t *testing.T) {
	for _, ok := range []string{"+57 300 123 4567", "3001234567", "(601) 555-1234", "+1-202-555-0143"} {
		assert.True(t, IsPhone(ok), ok)
	}
	for _, bad := range []string{"", "12345", "phone", "+57 300 abc 4567", "1234567890123456789"} {
		assert.False(t, IsPhone(bad), bad)
	}
}

func TestIsPersonName(t *testing.T) {
	assert.True(t, IsPersonName("Luisa"))
	assert.True(t, IsPersonName("Gómez Peña"))
	assert.True(t, IsPersonName("O'Neil-Smith"))
	assert.False(t, IsPersonName("L"))
	assert.False(t, IsPersonName("R2D2"))
	assert.False(t, IsPersonName("   "))
}

type visitor struct {
	Phone     string `validate:"required,phone"`
	FirstName string `validate:"required,person_name"`
	Document  string `validate:"required,docnumber"`
	BirthDate string `validate:"required,isodate,pastdate"`
	Plate     string `validate:"omitempty,plate"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	Register(v)

	ok := visitor{Phone: "+57 300 123 4567", FirstName: "Luisa", Document: "1098765432", BirthDate: "1990-05-14", Plate: "ABC123"}
	assert.NoError(t, v.Struct(ok))

	bad := ok
	bad.BirthDate = "2999-01-01"
	bad.Plate = "!!"
	err := v.Struct(bad)
	assert.Error(t, err)

	fields := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"BirthDate": "pastdate", "Plate": "plate"}, fields)
}
