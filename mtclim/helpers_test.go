package mtclim

import (
	"math"
	"time"
)

// 開始日 start から n 日分の季節変化のある日データを作成します。
// 降水は4日に1日です。
func syntheticForcing(start time.Time, n int) *Forcing {
	date := make([]time.Time, n)
	f := &Forcing{
		Tmin: make([]float64, n),
		Tmax: make([]float64, n),
		Prec: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		date[i] = d
		season := math.Cos(2 * math.Pi * float64(d.YearDay()-200) / 365.0)
		f.Tmax[i] = 15.0 + 12.0*season + 2.0*math.Sin(float64(i)*0.7)
		f.Tmin[i] = f.Tmax[i] - 9.0 - 3.0*math.Cos(float64(i)*0.3)
		if i%4 == 0 {
			f.Prec[i] = 6.0 + 4.0*math.Sin(float64(i))
		}
	}
	f.SetDates(date)
	return f
}

func testSite() *Site {
	return &Site{
		Elev:      1000.0,
		Lat:       40.0,
		BaseElev:  500.0,
		TminLapse: -6.5,
		TmaxLapse: -6.5,
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
