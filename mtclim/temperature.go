package mtclim

// 最低気温と最高気温の差の最小値 [℃]
const minDiurnalRange = 0.5

// 気温の標高補正をおこない、日中平均気温 Tday を計算します。
// 観測標高 BaseElev の気温を、標高 Elev の地点の気温へ気温減率 [℃/km] で補正します。
// 補正後の最低気温は 最高気温-0.5℃ を上限とします。
func (f *Forcing) CalcTAir(site *Site, p *Params) {
	dZ := (site.Elev - site.BaseElev) / 1000.0 // km

	f.Tday = make([]float64, f.Len())
	for i := 0; i < f.Len(); i++ {
		Tmax := f.Tmax[i] + dZ*site.TmaxLapse
		Tmin := f.Tmin[i] + dZ*site.TminLapse
		if Tmin >= Tmax-minDiurnalRange {
			Tmin = Tmax - minDiurnalRange
		}
		Tmean := (Tmin + Tmax) / 2

		f.Tmax[i] = Tmax
		f.Tmin[i] = Tmin
		f.Tday[i] = (Tmax-Tmean)*p.TdayCoef + Tmean
	}
}
