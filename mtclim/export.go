package mtclim

import (
	"bytes"
	"strconv"
)

// CSV形式で出力します。推定前の項目は出力しません。
func (f *Forcing) ToCSV(buf *bytes.Buffer) {
	type column struct {
		name   string
		values []float64
	}
	columns := []column{
		{"t_min", f.Tmin},
		{"t_max", f.Tmax},
		{"prec", f.Prec},
		{"tdew", f.Tdew},
		{"hum", f.Hum},
		{"t_day", f.Tday},
		{"swe", f.SWE},
		{"tfmax", f.Tfmax},
		{"dayl", f.Dayl},
		{"swrad", f.SWRad},
		{"tskc", f.Tskc},
		{"pet", f.PET},
		{"vapor_pressure", f.VaporPressure},
	}

	buf.WriteString("date")
	buf.WriteString(",day_of_year")
	for _, c := range columns {
		if c.values != nil {
			buf.WriteString(",")
			buf.WriteString(c.name)
		}
	}
	buf.WriteString("\n")

	writeFloat := func(v float64) {
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	for i := 0; i < f.Len(); i++ {
		if f.Date != nil {
			buf.WriteString(f.Date[i].Format(dateFormat))
		}
		buf.WriteString(",")
		buf.WriteString(strconv.Itoa(f.DayOfYear[i]))
		for _, c := range columns {
			if c.values != nil {
				writeFloat(c.values[i])
			}
		}
		buf.WriteString("\n")
	}
}
