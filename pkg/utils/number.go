package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide retorna 0 quando o denominador é zero, nunca NaN ou Inf
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// Percent calcula part/whole*100 protegido contra divisão por zero
func Percent(part, whole float64) float64 {
	return SafeDivide(part, whole) * 100
}
