package mtclim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

//--------------------------------------
// 積雪水量
//--------------------------------------

// 積雪水量 SWE を計算します。
//
// 最低気温が SnowTcrit 以下の日は降水量を積雪の増分、それ以外の日は
// SnowTrate*(Tmin-SnowTcrit) を融雪量として日ごとの増減を求め、その累積和を
// 0で下限処理します。
//
// Note:
//
//	累積和を求めてから下限処理するため、ある日の累積和が負になった場合でも
//	その負の値は以降の日の累積和に残ります。日ごとに0で打ち切る収支計算とは
//	結果が異なります（融雪で負になった後に降雪がある場合）。
func (f *Forcing) CalcSnowpack(site *Site, p *Params) {
	n := f.Len()
	delta := make([]float64, n)
	if n > 0 {
		delta[0] = site.initialSnowpack()
	}

	for i := 0; i < n; i++ {
		if f.Tmin[i] <= p.SnowTcrit {
			// 降雪
			delta[i] += f.Prec[i]
		} else {
			// 融雪
			delta[i] -= p.SnowTrate * (f.Tmin[i] - p.SnowTcrit)
		}
	}

	f.SWE = floats.CumSum(make([]float64, n), delta)
	for i := range f.SWE {
		f.SWE[i] = math.Max(f.SWE[i], 0.0)
	}
}
