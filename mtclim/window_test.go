package mtclim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_rollingMean(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}

	// 後方移動平均
	trailing := rollingMean(x, 3, false)
	assert.True(t, math.IsNaN(trailing[0]))
	assert.True(t, math.IsNaN(trailing[1]))
	assert.InDeltaSlice(t, []float64{2, 3, 4, 5}, trailing[2:], 1e-12)

	// 中心移動平均(幅4): 当日の1日前から2日後まで
	centered := rollingMean(x, 4, true)
	// 偶数幅は前に2日、後に1日
	assert.True(t, math.IsNaN(centered[0]))
	assert.True(t, math.IsNaN(centered[1]))
	assert.InDelta(t, 2.5, centered[2], 1e-12)
	assert.InDelta(t, 3.5, centered[3], 1e-12)
	assert.InDelta(t, 4.5, centered[4], 1e-12)
	assert.True(t, math.IsNaN(centered[5]))

	// 奇数幅は前後に同じ日数
	odd := rollingMean(x, 3, true)
	assert.True(t, math.IsNaN(odd[0]))
	assert.InDeltaSlice(t, []float64{2, 3, 4, 5}, odd[1:5], 1e-12)
	assert.True(t, math.IsNaN(odd[5]))
}

func Test_fillNearest(t *testing.T) {
	nan := math.NaN()
	x := []float64{nan, nan, 2, 3, nan}
	fillNearest(x)
	assert.Equal(t, []float64{2, 2, 2, 3, 3}, x)

	// 有効値なし
	y := []float64{nan, nan}
	fillNearest(y)
	assert.True(t, math.IsNaN(y[0]))
	assert.True(t, math.IsNaN(y[1]))
}

func Test_smoothDTR(t *testing.T) {
	// 窓幅より長い系列は端も平滑値で埋まる
	dtr := make([]float64, 40)
	for i := range dtr {
		dtr[i] = float64(i)
	}
	sm, short := smoothDTR(dtr, 30)
	assert.False(t, short)
	assert.InDelta(t, 14.5, sm[0], 1e-12)  // 15日目の平均 (0..29)
	assert.InDelta(t, 24.5, sm[39], 1e-12) // 25日目の平均 (10..39)
	for _, v := range sm {
		assert.False(t, math.IsNaN(v))
	}

	// 窓幅以下の系列は平滑化前の値を用いる
	short_dtr := []float64{5, 6, 7, 8}
	sm, short = smoothDTR(short_dtr, 30)
	assert.True(t, short)
	assert.Equal(t, short_dtr, sm)

	// ちょうど窓幅: 平均値1つで全体を埋める
	dtr30 := make([]float64, 30)
	for i := range dtr30 {
		dtr30[i] = float64(i)
	}
	sm, short = smoothDTR(dtr30, 30)
	assert.True(t, short)
	for _, v := range sm {
		assert.InDelta(t, 14.5, v, 1e-12)
	}
}

func Test_wrapsAround(t *testing.T) {
	assert.True(t, wrapsAround(1, 365))
	assert.True(t, wrapsAround(1, 366))
	assert.True(t, wrapsAround(60, 59))
	assert.False(t, wrapsAround(1, 300))
	assert.False(t, wrapsAround(10, 10))
}

// 400日の系列: 初日が1、最終日が365の場合は末尾90日を前に付ける
func Test_precipLeadIn(t *testing.T) {
	n := 400
	prec := make([]float64, n)
	for i := range prec {
		prec[i] = float64(i)
	}

	doy := make([]int, n)
	doy[0] = 1
	doy[n-1] = 365
	lead, wrapped := precipLeadIn(prec, doy, 90)
	assert.True(t, wrapped)
	assert.Len(t, lead, 90)
	assert.Equal(t, prec[n-90:], lead)

	// 不連続な場合は先頭90日を複製する
	doy[n-1] = 300
	lead, wrapped = precipLeadIn(prec, doy, 90)
	assert.False(t, wrapped)
	assert.Equal(t, prec[:90], lead)
}

// 90日以下は平均年降水量(下限8)、それ以外は移動平均
func Test_effectiveAnnualPrecip(t *testing.T) {
	p := DefaultParams()

	// 60日: 平均年降水量 1.0*365.25
	prec := make([]float64, 60)
	doy := make([]int, 60)
	for i := range prec {
		prec[i] = 1.0
		doy[i] = i + 1
	}
	parray := effectiveAnnualPrecip(prec, doy, &p)
	assert.Len(t, parray, 60)
	for _, v := range parray {
		assert.InDelta(t, 365.25*p.CmToMm, v, 1e-9)
	}

	// 降水なし: 下限80cm
	zero := make([]float64, 60)
	parray = effectiveAnnualPrecip(zero, doy, &p)
	for _, v := range parray {
		assert.InDelta(t, 80.0*p.CmToMm, v, 1e-9)
	}
}

func Test_effectiveAnnualPrecip_Window(t *testing.T) {
	p := DefaultParams()
	n := 400

	// 末尾90日のみ降水
	prec := make([]float64, n)
	for i := n - 90; i < n; i++ {
		prec[i] = 1.0
	}
	doy := make([]int, n)
	doy[0] = 1
	doy[n-1] = 365

	// 周回: 初日の窓は付け足した89日分と初日
	parray := effectiveAnnualPrecip(prec, doy, &p)
	assert.Len(t, parray, n)
	assert.InDelta(t, 89.0/90.0*365.25*p.CmToMm, parray[0], 1e-9)

	// 周回しない: 先頭90日(降水なし)を付け足すので下限値
	doy[n-1] = 300
	parray = effectiveAnnualPrecip(prec, doy, &p)
	assert.InDelta(t, 80.0*p.CmToMm, parray[0], 1e-9)

	// 最終日の窓は末尾90日
	assert.InDelta(t, 365.25*p.CmToMm, parray[n-1], 1e-9)
}

func Test_annualPrecip(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1.0, annualPrecip([]float64{0, 0, 0}, &p))
	assert.InDelta(t, 2.0*365.25, annualPrecip([]float64{1, 3}, &p), 1e-12)
}
