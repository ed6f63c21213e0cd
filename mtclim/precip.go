package mtclim

// 等降水量値の比 site_isoh / base_isoh で降水量を補正します。
func (f *Forcing) CalcPrecip(site *Site) {
	ratio := site.isohRatio()
	for i := range f.Prec {
		f.Prec[i] *= ratio
	}
}
