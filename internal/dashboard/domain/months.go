package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// abreviaturas pt-BR de mes (formato "short" de CLDR)
var shortMonthsPtBR = [12]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

var titlePtBR = cases.Title(language.BrazilianPortuguese)

// MonthLabel devuelve la abreviatura capitalizada y sin el primer punto: "Jan", "Fev", ...
func MonthLabel(m time.Month) string {
	name := titlePtBR.String(shortMonthsPtBR[m-1])
	return strings.Replace(name, ".", "", 1)
}
