package mtclim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 閾値0℃、融雪係数1
// 3日目に累積和が-5となるが、4日目の累積和には-5が残る
func Test_CalcSnowpack(t *testing.T) {
	p := DefaultParams()
	p.SnowTcrit = 0.0
	p.SnowTrate = 1.0

	f := &Forcing{
		Tmin: []float64{-5.0, 5.0, 10.0, -5.0},
		Prec: []float64{10.0, 0.0, 0.0, 20.0},
	}
	f.CalcSnowpack(&Site{}, &p)

	assert.InDeltaSlice(t, []float64{10.0, 5.0, 0.0, 15.0}, f.SWE, 1e-12)
}

// 初日の積雪水量
func Test_CalcSnowpack_Initial(t *testing.T) {
	p := DefaultParams()
	p.SnowTcrit = 0.0
	p.SnowTrate = 1.0

	f := &Forcing{
		Tmin: []float64{2.0, 3.0, -1.0},
		Prec: []float64{0.0, 0.0, 4.0},
	}
	f.CalcSnowpack(&Site{Snowpack: float64Ptr(20.0)}, &p)

	// 20-2=18, 18-3=15, 15+4=19
	assert.InDeltaSlice(t, []float64{18.0, 15.0, 19.0}, f.SWE, 1e-12)
}

// 閾値ちょうどの日は降雪とする
func Test_CalcSnowpack_Threshold(t *testing.T) {
	p := DefaultParams()

	f := &Forcing{
		Tmin: []float64{p.SnowTcrit, p.SnowTcrit + 1.0},
		Prec: []float64{3.0, 3.0},
	}
	f.CalcSnowpack(&Site{}, &p)

	assert.InDelta(t, 3.0, f.SWE[0], 1e-12)
	assert.InDelta(t, 3.0-p.SnowTrate, f.SWE[1], 1e-12)
	for _, v := range f.SWE {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}
