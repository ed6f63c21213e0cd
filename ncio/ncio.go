// Package ncio は推定結果の日データを NetCDF 形式で保存します。
package ncio

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/udawtr/mtclim-go/mtclim"
)

// 出力する変数
type variable struct {
	name   string
	units  string
	values []float64
}

func variables(f *mtclim.Forcing) []variable {
	vars := []variable{
		{"t_min", "C", f.Tmin},
		{"t_max", "C", f.Tmax},
		{"prec", "mm", f.Prec},
		{"tdew", "C", f.Tdew},
		{"hum", "Pa", f.Hum},
		{"t_day", "C", f.Tday},
		{"swe", "mm", f.SWE},
		{"tfmax", "1", f.Tfmax},
		{"dayl", "s", f.Dayl},
		{"swrad", "W m-2", f.SWRad},
		{"tskc", "1", f.Tskc},
		{"pet", "mm", f.PET},
		{"vapor_pressure", "Pa", f.VaporPressure},
	}

	out := vars[:0]
	for _, v := range vars {
		if v.values != nil {
			out = append(out, v)
		}
	}
	return out
}

// 日データ f を path に NetCDF 形式で保存します。既存のファイルは上書きします。
// 時間の次元 time は初日からの日数です。
func Write(path string, f *mtclim.Forcing, site *mtclim.Site) (err error) {
	n := f.Len()
	if n == 0 {
		return fmt.Errorf("%w: no days to write", mtclim.ErrMissingField)
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := ds.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	timeDim, err := ds.AddDim("time", uint64(n))
	if err != nil {
		return err
	}
	dims := []netcdf.Dim{timeDim}

	// 属性
	for name, value := range map[string]float64{
		"elev":      site.Elev,
		"lat":       site.Lat,
		"base_elev": site.BaseElev,
		"t_min_lr":  site.TminLapse,
		"t_max_lr":  site.TmaxLapse,
	} {
		if err := ds.Attr(name).WriteFloat64s([]float64{value}); err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
	}

	timeVar, err := ds.AddVar("time", netcdf.INT, dims)
	if err != nil {
		return err
	}
	units := "days since 1970-01-01"
	if f.Date != nil {
		units = "days since " + f.Date[0].Format("2006-01-02")
	}
	if err := timeVar.Attr("units").WriteBytes([]byte(units)); err != nil {
		return err
	}

	doyVar, err := ds.AddVar("day_of_year", netcdf.INT, dims)
	if err != nil {
		return err
	}

	vars := variables(f)
	ncVars := make([]netcdf.Var, len(vars))
	for i, v := range vars {
		ncVars[i], err = ds.AddVar(v.name, netcdf.DOUBLE, dims)
		if err != nil {
			return fmt.Errorf("variable %s: %w", v.name, err)
		}
		if err := ncVars[i].Attr("units").WriteBytes([]byte(v.units)); err != nil {
			return fmt.Errorf("variable %s: %w", v.name, err)
		}
	}

	if err := ds.EndDef(); err != nil {
		return err
	}

	days := make([]int32, n)
	doy := make([]int32, n)
	for i := 0; i < n; i++ {
		days[i] = int32(i)
		doy[i] = int32(f.DayOfYear[i])
	}
	if err := timeVar.WriteInt32s(days); err != nil {
		return err
	}
	if err := doyVar.WriteInt32s(doy); err != nil {
		return err
	}
	for i, v := range vars {
		if err := ncVars[i].WriteFloat64s(v.values); err != nil {
			return fmt.Errorf("variable %s: %w", v.name, err)
		}
	}
	return nil
}
