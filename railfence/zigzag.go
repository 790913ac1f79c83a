package railfence

// zigzag yields rail indices 0, 1, ..., n-1, n-2, ..., 1, 0, 1, ...
type zigzag struct {
	rails int
	rail  int
	step  int
}

func newZigzag(rails int) *zigzag {
	return &zigzag{rails: rails, step: 1}
}

// next returns the current rail and moves one position along the fence.
func (z *zigzag) next() int {
	rail := z.rail
	if z.rails == 1 {
		return rail
	}

	z.rail += z.step
	switch z.rail {
	case z.rails - 1:
		z.step = -1
	case 0:
		z.step = 1
	}
	return rail
}

func period(rails int) int {
	return 2 * (rails - 1)
}

// railLengths reports how many of length characters land on each rail.
// Within a period rail j is visited at phases j and period-j, which is a
// single phase for the first and the last rail.
func railLengths(rails, length int) []int {
	lengths := make([]int, rails)
	if rails == 1 {
		lengths[0] = length
		return lengths
	}

	var (
		p         = period(rails)
		section   = length / p
		remainder = length % p
	)
	for j := range lengths {
		if j == 0 || j == rails-1 {
			lengths[j] = section
		} else {
			lengths[j] = 2 * section
			if remainder > p-j {
				lengths[j]++
			}
		}
		if remainder > j {
			lengths[j]++
		}
	}
	return lengths
}
