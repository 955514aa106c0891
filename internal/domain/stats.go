package domain

// divRound returns num/den rounded half away from zero. den must be positive.
func divRound(num, den int64) int64 {
	if num < 0 {
		return -((-2*num + den) / (2 * den))
	}
	return (2*num + den) / (2 * den)
}

// Rate returns part/whole as a percentage rounded to one decimal.
// All divisions are zero-safe: returns 0 when whole is zero.
// The ratio is rounded in integer tenths so exact halves such as 23/80 = 28.75%
// round up regardless of their binary representation.
func Rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(divRound(int64(part)*1000, int64(whole))) / 10
}

// AverageDollars returns cents/n in dollars, rounded half away from zero to the cent.
func AverageDollars(cents int64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return CentsToDollars(divRound(cents, int64(n)))
}
