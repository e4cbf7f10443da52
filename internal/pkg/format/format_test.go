package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	assert.Equal(t, "11987654321", Digits("(11) 98765-4321"))
	assert.Equal(t, "", Digits("abc-.,"))
}

func TestCPF_PartialAndFull(t *testing.T) {
	assert.Equal(t, "529", CPF("529"))
	assert.Equal(t, "529.982", CPF("529982"))
	assert.Equal(t, "529.982.247", CPF("529982247"))
	assert.Equal(t, "529.982.247-25", CPF("52998224725"))
	// Extra digits are dropped.
	assert.Equal(t, "529.982.247-25", CPF("529982247259"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "(11) 9876", Phone("119876"))
	assert.Equal(t, "(11) 3876-5432", Phone("1138765432"))
	assert.Equal(t, "(11) 98765-4321", Phone("11987654321"))
}

func TestCEP(t *testing.T) {
	assert.Equal(t, "01310", CEP("01310"))
	assert.Equal(t, "01310-100", CEP("01310100"))
	assert.Equal(t, "01310-100", CEP("01310-100"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "15", Date("15"))
	assert.Equal(t, "15/06", Date("1506"))
	assert.Equal(t, "15/06/1990", Date("15061990"))
}

func TestDateToISO(t *testing.T) {
	assert.Equal(t, "1990-06-15", DateToISO("15/06/1990"))
	assert.Equal(t, "", DateToISO("15/06/199"))
	assert.Equal(t, "", DateToISO(""))
}

func TestDateRoundTrip(t *testing.T) {
	assert.Equal(t, "15/06/1990", DateFromISO(DateToISO("15/06/1990")))
}
