package mtclim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//--------------------------------------
// 短波放射量と湿度
//--------------------------------------

// 晴天時透過率の下限
const minTransmittance = 0.0001

// 短波放射量、雲量、水蒸気圧を計算します。
//
// 透過率と可能蒸発散量から露点温度を推定し、露点温度の変化量(RMS)が
// DewpointTolerance 未満になるまで反復します。戻り値は反復回数です。
// MaxIterations 回で収束しない場合は ErrNotConverged を返します。
//
// CalcTAir と CalcSnowpack の後に呼び出してください。
func (f *Forcing) CalcSradHum(sg *SolarGeom, site *Site, p *Params) (int, error) {
	n := f.Len()
	if len(f.Tday) != n {
		return 0, fmt.Errorf("%w: t_day (run CalcTAir first)", ErrMissingField)
	}
	if len(f.SWE) != n {
		return 0, fmt.Errorf("%w: swe (run CalcSnowpack first)", ErrMissingField)
	}
	for i, d := range f.DayOfYear {
		if d < 1 || d > sg.Len() {
			return 0, fmt.Errorf("%w: day_of_year %d on day %d exceeds solar table of %d days",
				ErrInvalidDays, d, i, sg.Len())
		}
	}

	// 日較差
	dtr := make([]float64, n)
	for i := 0; i < n; i++ {
		f.Tmax[i] = math.Max(f.Tmax[i], f.Tmin[i])
		dtr[i] = f.Tmax[i] - f.Tmin[i]
	}

	// 平滑化した日較差
	smDTR, short := smoothDTR(dtr, p.SmoothingWindow)
	if short {
		f.warn("timeseries of %d days is not longer than the %d day smoothing window; "+
			"filling missing values with unsmoothed data", n, p.SmoothingWindow)
	}
	f.smDTR = smDTR

	// 有効年降水量
	parray := effectiveAnnualPrecip(f.Prec, f.DayOfYear, p)

	f.Tfmax = calcTfmax(f.Prec, dtr, smDTR, p)

	// 露点温度と水蒸気圧の初期値
	tdew := make([]float64, n)
	if f.Tdew != nil {
		copy(tdew, f.Tdew)
	} else {
		copy(tdew, f.Tmin)
	}
	pva := make([]float64, n)
	for i := 0; i < n; i++ {
		if f.Hum != nil {
			pva[i] = f.Hum[i]
		} else {
			pva[i] = SVP(tdew[i])
		}
	}

	pa := AtmPres(site.Elev)
	f.Dayl = make([]float64, n)
	for i, d := range f.DayOfYear {
		f.Dayl[i] = sg.Daylength[d-1]
	}
	f.SWRad = make([]float64, n)
	f.Tskc = make([]float64, n)

	tdew_old := tdew
	tdew, pva = f.swHumIter(sg, pa, pva, parray, dtr, p)
	iter := 1
	for {
		rms := rmsDiff(tdew, tdew_old)
		logger.Debugf("dewpoint iteration %d: rms change %g", iter, rms)
		if math.IsNaN(rms) {
			return iter, fmt.Errorf("%w: rms change is NaN after %d iterations", ErrNotConverged, iter)
		}
		if rms <= p.DewpointTolerance {
			break
		}
		if iter >= p.MaxIterations {
			return iter, fmt.Errorf("%w: rms change %g after %d iterations", ErrNotConverged, rms, iter)
		}
		tdew_old = tdew
		tdew, pva = f.swHumIter(sg, pa, pva, parray, dtr, p)
		iter++
	}

	f.VaporPressure = pva
	f.PET = parray
	return iter, nil
}

// 日較差 dtr と平滑化した日較差 smDTR から透過率の最大値を計算します。
// 降水日は RainScalar を乗じます。
func calcTfmax(prec []float64, dtr []float64, smDTR []float64, p *Params) []float64 {
	tfmax := make([]float64, len(dtr))
	for i := range dtr {
		b := p.B0 + p.B1*math.Exp(-p.B2*smDTR[i])
		tfmax[i] = 1.0 - 0.9*math.Exp(-b*math.Pow(dtr[i], p.C))
		if prec[i] > p.SwPrecThresh {
			tfmax[i] *= p.RainScalar
		}
	}
	return tfmax
}

// 露点温度の反復計算の1回分。短波放射量と雲量を更新し、新しい露点温度と水蒸気圧を返します。
func (f *Forcing) swHumIter(sg *SolarGeom, pa float64, pva []float64, parray []float64, dtr []float64, p *Params) ([]float64, []float64) {
	n := f.Len()
	tdew := make([]float64, n)
	pvaNew := make([]float64, n)

	for i := 0; i < n; i++ {
		yday := f.DayOfYear[i] - 1

		t_tmax := math.Max(sg.TtMax0[yday]+p.ABase*pva[i], minTransmittance)
		t_final := t_tmax * f.Tfmax[i]

		// 積雪の影響
		sc := 0.0
		if p.SnowRadiation == SnowRadiationOn && f.SWE[i] > 0 && sg.Daylength[yday] > 0 {
			sc = math.Max((1.32+0.096*f.SWE[i])*1.0e6/sg.Daylength[yday], 100.0)
		}

		f.SWRad[i] = sg.PotRad[yday]*t_final + sc
		f.Tskc[i] = p.CloudMethod.cloudFraction(f.Tfmax[i])

		// 可能蒸発散量と有効年降水量の比から露点温度を補正
		pet := CalcPET(f.SWRad[i], f.Tday[i], pa, f.Dayl[i])
		ratio := pet / parray[i]
		tmink := f.Tmin[i] + p.Kelvin
		tdew[i] = tmink*(-0.127+1.121*(1.003-1.444*ratio+12.312*ratio*ratio-32.766*ratio*ratio*ratio)+0.0006*dtr[i]) - p.Kelvin
		pvaNew[i] = SVP(tdew[i])
	}

	return tdew, pvaNew
}

// 2つの系列の差の二乗平均平方根
func rmsDiff(a []float64, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return floats.Distance(a, b, 2) / math.Sqrt(float64(len(a)))
}
