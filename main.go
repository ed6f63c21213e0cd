// MTCLIM
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/akamensky/argparse"
	"github.com/hhkbp2/go-logging"

	"github.com/udawtr/mtclim-go/mtclim"
	"github.com/udawtr/mtclim-go/ncio"
	"github.com/udawtr/mtclim-go/server"
)

func main() {
	// コマンドライン引数の処理
	parser := argparse.NewParser("MTCLIM", "Estimates daily radiation, humidity and snowpack from daily temperature and precipitation")

	input := parser.String("i", "input", &argparse.Options{
		Help: "入力CSVファイルパス（date,t_min,t_max,prec[,tdew][,hum]、.gz可）"})

	elev := parser.Float("", "elev", &argparse.Options{
		Default: 0.0,
		Help:    "推計対象地点の標高[m]"})

	lat := parser.Float("", "lat", &argparse.Options{
		Default: 35.658,
		Help:    "推計対象地点の緯度（10進法）"})

	base_elev := parser.Float("", "base_elev", &argparse.Options{
		Default: 0.0,
		Help:    "入力データの基準標高[m]"})

	t_min_lr := parser.Float("", "t_min_lr", &argparse.Options{
		Default: -6.5,
		Help:    "最低気温の気温減率[℃/km]"})

	t_max_lr := parser.Float("", "t_max_lr", &argparse.Options{
		Default: -6.5,
		Help:    "最高気温の気温減率[℃/km]"})

	site_isoh := parser.Float("", "site_isoh", &argparse.Options{
		Default: 0.0,
		Help:    "推計対象地点の等降水量線値（0=補正なし）"})

	base_isoh := parser.Float("", "base_isoh", &argparse.Options{
		Default: 0.0,
		Help:    "入力データの等降水量線値（0=補正なし）"})

	snowpack := parser.Float("", "snowpack", &argparse.Options{
		Default: 0.0,
		Help:    "初日の積雪水量[mm]"})

	siteFile := parser.String("s", "site", &argparse.Options{
		Default: "",
		Help:    "地点情報のYAMLファイルパス（指定時は地点の引数より優先）"})

	config := parser.String("c", "config", &argparse.Options{
		Default: "",
		Help:    "計算定数のYAMLファイルパス"})

	start := parser.String("", "start", &argparse.Options{
		Default: "",
		Help:    "出力期間の開始日 (YYYY-MM-DD)"})

	end := parser.String("", "end", &argparse.Options{
		Default: "",
		Help:    "出力期間の終了日 (YYYY-MM-DD)"})

	format := parser.Selector("f", "file", []string{"CSV", "NC"}, &argparse.Options{
		Default: "CSV",
		Help:    "出力形式 CSV or NC"})

	filename := parser.String("o", "output", &argparse.Options{
		Default: "",
		Help:    "保存ファイルパス"})

	log := parser.Selector("", "log", []string{"DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}, &argparse.Options{
		Default: "ERROR",
		Help:    "ログレベルの設定"})

	serve := parser.String("", "serve", &argparse.Options{
		Default: "",
		Help:    "HTTPサーバーとして起動するアドレス（例 :8080）"})

	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(2)
	}

	// ログレベル設定
	logger := logging.GetLogger("mtclim")
	if *log == "DEBUG" {
		logger.SetLevel(logging.LevelDebug)
	} else if *log == "INFO" {
		logger.SetLevel(logging.LevelInfo)
	} else if *log == "WARN" {
		logger.SetLevel(logging.LevelWarn)
	} else if *log == "ERROR" {
		logger.SetLevel(logging.LevelError)
	} else if *log == "CRITICAL" {
		logger.SetLevel(logging.LevelCritical)
	}

	// 計算定数
	params := mtclim.DefaultParams()
	if *config != "" {
		params, err = mtclim.LoadParams(*config)
		if err != nil {
			exitWith(err)
		}
	}

	// HTTPサーバー
	if *serve != "" {
		logger.Infof("HTTPサーバー起動: %s", *serve)
		if err := server.SetupRouter(params).Run(*serve); err != nil {
			exitWith(err)
		}
		return
	}

	if *input == "" {
		fmt.Print(parser.Usage("-i|--input is required"))
		os.Exit(2)
	}

	// 地点情報
	var site *mtclim.Site
	if *siteFile != "" {
		site, err = mtclim.LoadSite(*siteFile)
		if err != nil {
			exitWith(err)
		}
	} else {
		site = &mtclim.Site{
			Elev:      *elev,
			Lat:       *lat,
			BaseElev:  *base_elev,
			TminLapse: *t_min_lr,
			TmaxLapse: *t_max_lr,
		}
		if *site_isoh != 0 {
			site.SiteIsoh = site_isoh
		}
		if *base_isoh != 0 {
			site.BaseIsoh = base_isoh
		}
		if *snowpack != 0 {
			site.Snowpack = snowpack
		}
	}

	// 入力
	f, err := mtclim.LoadCSV(*input)
	if err != nil {
		exitWith(err)
	}

	// 期間の切り出し
	if *start != "" || *end != "" {
		f, err = extractPeriod(f, *start, *end)
		if err != nil {
			exitWith(err)
		}
	}

	// 計算
	res, err := mtclim.Run(f, site, &params)
	if err != nil {
		exitWith(err)
	}
	logger.Infof("反復回数: %d", res.Iterations)

	// 保存
	if *format == "NC" {
		if *filename == "" {
			exitWith(fmt.Errorf("-o|--output is required for NC"))
		}
		logger.Infof("NetCDF保存: %s", *filename)
		if err := ncio.Write(*filename, res.Forcing, site); err != nil {
			exitWith(err)
		}
	} else {
		var buf *bytes.Buffer = bytes.NewBuffer([]byte{})
		res.Forcing.ToCSV(buf)

		if *filename == "" {
			fmt.Print(buf.String())
		} else {
			logger.Infof("CSV保存: %s", *filename)
			if err := os.WriteFile(*filename, buf.Bytes(), 0644); err != nil {
				exitWith(err)
			}
		}
	}

	logger.Infof("計算が終了しました")
}

// 開始日・終了日の省略時は入力の先頭・末尾とします。
func extractPeriod(f *mtclim.Forcing, start string, end string) (*mtclim.Forcing, error) {
	if f.Len() == 0 {
		return f, nil
	}
	startDate := f.Date[0]
	endDate := f.Date[f.Len()-1]

	var err error
	if start != "" {
		startDate, err = time.Parse("2006-01-02", start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if end != "" {
		endDate, err = time.Parse("2006-01-02", end)
		if err != nil {
			return nil, fmt.Errorf("invalid --end: %w", err)
		}
	}
	return f.ExtractPeriod(startDate, endDate)
}

func exitWith(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
