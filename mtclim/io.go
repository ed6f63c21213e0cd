package mtclim

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// CSVファイル path から日データを読み込みます。拡張子が .gz の場合は gzip として展開します。
func LoadCSV(path string) (*Forcing, error) {
	logger.Infof("入力ファイル読み込み: %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gf, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gf.Close()
		r = gf
	}

	forcing, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return forcing, nil
}

// CSVから日データを読み込みます。
//
// 1行目はヘッダーで、date, t_min, t_max, prec 列は必須です。
// tdew（露点温度 [℃]）、hum（水蒸気圧 [Pa]）列は任意です。
// 日付の書式は 2006-01-02 です。
func ReadCSV(r io.Reader) (*Forcing, error) {
	csvReader := csv.NewReader(r)
	csvReader.ReuseRecord = true
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMissingField, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"date", "t_min", "t_max", "prec"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: column %s", ErrMissingField, name)
		}
	}
	_, hasTdew := col["tdew"]
	_, hasHum := col["hum"]

	var date []time.Time
	f := &Forcing{}
	if hasTdew {
		f.Tdew = []float64{}
	}
	if hasHum {
		f.Hum = []float64{}
	}

	line := 1
	for {
		row, cerr := csvReader.Read()
		if cerr == io.EOF {
			break
		}
		if cerr != nil {
			return nil, cerr
		}
		line++

		d, err := time.Parse(dateFormat, strings.TrimSpace(row[col["date"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		date = append(date, d)

		parse := func(name string) (float64, error) {
			s := strings.TrimSpace(row[col[name]])
			if s == "" {
				return 0, fmt.Errorf("%w: %s on line %d", ErrMissingField, name, line)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			return v, nil
		}

		Tmin, err := parse("t_min")
		if err != nil {
			return nil, err
		}
		Tmax, err := parse("t_max")
		if err != nil {
			return nil, err
		}
		Prec, err := parse("prec")
		if err != nil {
			return nil, err
		}
		f.Tmin = append(f.Tmin, Tmin)
		f.Tmax = append(f.Tmax, Tmax)
		f.Prec = append(f.Prec, Prec)

		if hasTdew {
			Tdew, err := parse("tdew")
			if err != nil {
				return nil, err
			}
			f.Tdew = append(f.Tdew, Tdew)
		}
		if hasHum {
			Hum, err := parse("hum")
			if err != nil {
				return nil, err
			}
			f.Hum = append(f.Hum, Hum)
		}
	}

	f.SetDates(date)
	return f, nil
}
