package mtclim

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// 日単位の入力データおよび推定結果。各計算段階で順に書き加えられます。
type Forcing struct {
	Date      []time.Time // 日付 (任意)
	DayOfYear []int       // 年間通日 1～366

	Tmin []float64 // 日最低気温 [℃]
	Tmax []float64 // 日最高気温 [℃]
	Prec []float64 // 日降水量 [mm]
	Tdew []float64 // 露点温度の観測値 [℃] (nil=観測なし)
	Hum  []float64 // 水蒸気圧の観測値 [Pa] (nil=観測なし)

	// 推定結果
	Tday          []float64 // 日中平均気温 [℃]
	SWE           []float64 // 積雪水量 [mm]
	Tfmax         []float64 // 透過率の最大値 [-]
	Dayl          []float64 // 日長 [s]
	SWRad         []float64 // 短波放射量 [W/m2]
	Tskc          []float64 // 雲量 [-]
	PET           []float64 // 有効年降水量 [mm] (可能蒸発散量の出力欄)
	VaporPressure []float64 // 水蒸気圧 [Pa]

	smDTR []float64 // 平滑化した日較差 [℃]

	Warnings []string // 計算を継続した警告
}

// 日数
func (f *Forcing) Len() int {
	return len(f.Tmin)
}

// 日付列 date から年間通日を設定します。
func (f *Forcing) SetDates(date []time.Time) {
	f.Date = date
	f.DayOfYear = make([]int, len(date))
	for i, d := range date {
		f.DayOfYear[i] = d.YearDay()
	}
}

// 入力データを検査します。
// 必須項目の欠落は ErrMissingField、日付の不連続は ErrInvalidDays を返します。
// Date が無い場合は年間通日の連続性だけを確認するため、閏年の366日目の欠落は検出できません。
func (f *Forcing) Validate() error {
	n := f.Len()
	if n == 0 {
		return fmt.Errorf("%w: t_min", ErrMissingField)
	}
	if len(f.Tmax) != n {
		return fmt.Errorf("%w: t_max has %d values, want %d", ErrMissingField, len(f.Tmax), n)
	}
	if len(f.Prec) != n {
		return fmt.Errorf("%w: prec has %d values, want %d", ErrMissingField, len(f.Prec), n)
	}
	if len(f.DayOfYear) != n {
		return fmt.Errorf("%w: day_of_year has %d values, want %d", ErrMissingField, len(f.DayOfYear), n)
	}
	if f.Tdew != nil && len(f.Tdew) != n {
		return fmt.Errorf("%w: tdew has %d values, want %d", ErrMissingField, len(f.Tdew), n)
	}
	if f.Hum != nil && len(f.Hum) != n {
		return fmt.Errorf("%w: hum has %d values, want %d", ErrMissingField, len(f.Hum), n)
	}

	for i := 0; i < n; i++ {
		if math.IsNaN(f.Tmin[i]) || math.IsNaN(f.Tmax[i]) || math.IsNaN(f.Prec[i]) {
			return fmt.Errorf("%w: undefined value on day %d", ErrMissingField, i)
		}
		if f.Tdew != nil && math.IsNaN(f.Tdew[i]) {
			return fmt.Errorf("%w: undefined tdew on day %d", ErrMissingField, i)
		}
		if f.Hum != nil && math.IsNaN(f.Hum[i]) {
			return fmt.Errorf("%w: undefined hum on day %d", ErrMissingField, i)
		}
		if f.DayOfYear[i] < 1 || f.DayOfYear[i] > 366 {
			return fmt.Errorf("%w: day_of_year %d on day %d", ErrInvalidDays, f.DayOfYear[i], i)
		}
	}

	if f.Date != nil {
		if len(f.Date) != n {
			return fmt.Errorf("%w: date has %d values, want %d", ErrMissingField, len(f.Date), n)
		}
		for i := 1; i < n; i++ {
			prev := f.Date[i-1]
			next := time.Date(prev.Year(), prev.Month(), prev.Day()+1, 0, 0, 0, 0, prev.Location())
			cur := f.Date[i]
			if cur.Year() != next.Year() || cur.YearDay() != next.YearDay() {
				return fmt.Errorf("%w: %s does not follow %s", ErrInvalidDays,
					cur.Format("2006-01-02"), prev.Format("2006-01-02"))
			}
		}
		return nil
	}

	// 日付が無い場合は年間通日の連続性のみ確認する。
	// 年が分からないため 365 => 1 は閏年でも受け入れる（366日目の欠落は検出できない）。
	for i := 1; i < n; i++ {
		prev, cur := f.DayOfYear[i-1], f.DayOfYear[i]
		if cur == prev+1 {
			continue
		}
		if cur == 1 && (prev == 365 || prev == 366) {
			continue
		}
		return fmt.Errorf("%w: day_of_year %d follows %d", ErrInvalidDays, cur, prev)
	}
	return nil
}

// 開始日 start から 終了日 end までのデータを抜き出して新しい構造体を作成します。
// 日付を持たないデータには使用できません。
func (f *Forcing) ExtractPeriod(start time.Time, end time.Time) (*Forcing, error) {
	if f.Date == nil {
		return nil, fmt.Errorf("%w: date", ErrMissingField)
	}
	start_index := sort.Search(len(f.Date), func(i int) bool {
		return !f.Date[i].Before(start)
	})
	end_index := sort.Search(len(f.Date), func(i int) bool {
		return f.Date[i].After(end)
	})
	if start_index >= end_index {
		return nil, fmt.Errorf("%w: no days between %s and %s", ErrInvalidDays,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	sub := func(v []float64) []float64 {
		if v == nil {
			return nil
		}
		return append([]float64{}, v[start_index:end_index]...)
	}

	out := &Forcing{
		Date:          append([]time.Time{}, f.Date[start_index:end_index]...),
		DayOfYear:     append([]int{}, f.DayOfYear[start_index:end_index]...),
		Tmin:          sub(f.Tmin),
		Tmax:          sub(f.Tmax),
		Prec:          sub(f.Prec),
		Tdew:          sub(f.Tdew),
		Hum:           sub(f.Hum),
		Tday:          sub(f.Tday),
		SWE:           sub(f.SWE),
		Tfmax:         sub(f.Tfmax),
		Dayl:          sub(f.Dayl),
		SWRad:         sub(f.SWRad),
		Tskc:          sub(f.Tskc),
		PET:           sub(f.PET),
		VaporPressure: sub(f.VaporPressure),
		smDTR:         sub(f.smDTR),
	}
	return out, nil
}

// 計算を継続できる問題を記録します。
func (f *Forcing) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Warnf("%s", msg)
	f.Warnings = append(f.Warnings, msg)
}
