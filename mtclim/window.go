package mtclim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//--------------------------------------
// 移動平均
//--------------------------------------

// 窓幅 w の単純移動平均を計算します。窓が系列からはみ出す位置は NaN とします。
// center が true の場合は中心移動平均（偶数幅では当日より前に w/2 日、後に w/2-1 日）、
// false の場合は当日までの後方移動平均です。
func rollingMean(x []float64, w int, center bool) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		hi := i
		if center {
			hi = i + (w-1)/2
		}
		lo := hi - w + 1
		if lo < 0 || hi >= n {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Mean(x[lo:hi+1], nil)
	}
	return out
}

// 欠損(NaN)を最も近い有効値で埋めます。有効値が一つも無い場合は何もしません。
func fillNearest(x []float64) {
	first := -1
	for i, v := range x {
		if !math.IsNaN(v) {
			first = i
			break
		}
	}
	if first < 0 {
		return
	}

	// 先頭側: 後方の有効値で埋める
	for i := 0; i < first; i++ {
		x[i] = x[first]
	}
	// 以降: 直前の有効値で埋める
	for i := first + 1; i < len(x); i++ {
		if math.IsNaN(x[i]) {
			x[i] = x[i-1]
		}
	}
}

// 日較差 dtr を窓幅 w で平滑化します。
// 系列長が窓幅以下の場合は short=true を返し、埋められなかった日は平滑化前の値とします。
func smoothDTR(dtr []float64, w int) (sm []float64, short bool) {
	sm = rollingMean(dtr, w, true)
	fillNearest(sm)

	short = len(dtr) <= w
	if short {
		for i := range sm {
			if math.IsNaN(sm[i]) {
				sm[i] = dtr[i]
			}
		}
	}
	return sm, short
}

//--------------------------------------
// 有効年降水量
//--------------------------------------

const (
	minEffAnnPrecipShort = 8.0  // 短期間データの有効年降水量の下限 [cm]
	minEffAnnPrecip      = 80.0 // 有効年降水量の下限 [cm]
)

// 平均年降水量を計算します。0の場合は除算に備えて1とします。
func annualPrecip(prec []float64, p *Params) float64 {
	ann := floats.Sum(prec) / float64(len(prec)) * p.DaysPerYear
	if ann == 0.0 {
		ann = 1.0
	}
	return ann
}

// 系列の最終日の翌日が初日となる（1年分を切れ目なく周回する）かを判定します。
// 365日と366日の暦のどちらでも成立すればよいものとします。
func wrapsAround(startDay int, endDay int) bool {
	return startDay%365 == endDay%365+1 || startDay%366 == endDay%366+1
}

// 移動平均の前に付け足す w 日分の降水量を返します。
// 年を周回する系列は末尾 w 日を、それ以外は先頭 w 日を複製します。
func precipLeadIn(prec []float64, dayOfYear []int, w int) (lead []float64, wrapped bool) {
	n := len(prec)
	wrapped = wrapsAround(dayOfYear[0], dayOfYear[n-1])
	if wrapped {
		lead = append([]float64{}, prec[n-w:]...)
	} else {
		lead = append([]float64{}, prec[:w]...)
	}
	return lead, wrapped
}

// 日ごとの有効年降水量 [mm] を計算します。
//
// 日数が PrecipWindow 以下の場合は平均年降水量（下限8）を全日に用います。
// それ以外は PrecipWindow 日の後方移動平均を年換算した値を用います。
// いずれも下限を80とし、cm から mm に換算します。
func effectiveAnnualPrecip(prec []float64, dayOfYear []int, p *Params) []float64 {
	n := len(prec)
	w := p.PrecipWindow
	parray := make([]float64, n)

	if n <= w {
		eff := math.Max(annualPrecip(prec, p), minEffAnnPrecipShort)
		for i := range parray {
			parray[i] = eff
		}
	} else {
		lead, _ := precipLeadIn(prec, dayOfYear, w)
		window := append(lead, prec...)
		means := rollingMean(window, w, false)
		for i := 0; i < n; i++ {
			parray[i] = means[i+w] * p.DaysPerYear
		}
	}

	for i := range parray {
		parray[i] = math.Max(parray[i], minEffAnnPrecip) * p.CmToMm
	}
	return parray
}
