package utils

import (
	"fmt"
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatPercent renders 49 as "49%" and 49.5 as "49.5%".
func FormatPercent(f float64) string {
	return strconv.FormatFloat(RoundWithTwoDecimalPlace(f), 'f', -1, 64) + "%"
}

// FormatPointChange renders a percentage-point delta with an explicit sign, e.g. "+3pp".
func FormatPointChange(f float64) string {
	f = RoundWithTwoDecimalPlace(f)
	sign := "+"
	if f < 0 {
		sign = "-"
		f = -f
	}
	return fmt.Sprintf("%s%spp", sign, strconv.FormatFloat(f, 'f', -1, 64))
}
