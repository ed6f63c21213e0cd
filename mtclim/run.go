// MTCLIM: 日単位の最高・最低気温と降水量から、地点の日中平均気温、積雪水量、
// 短波放射量、雲量、水蒸気圧を推定します。
package mtclim

import (
	"github.com/hhkbp2/go-logging"
)

var logger = logging.GetLogger("mtclim")

// 計算結果
type Result struct {
	Forcing    *Forcing   // 推定結果を書き加えた日データ
	Geom       *SolarGeom // 計算に用いた太陽位置の表
	Iterations int        // 露点温度の反復回数
}

// 地点 site の日データ f について一連の推定を行います。
// 太陽位置の表は地点の標高と緯度から作成します。f は書き換えられます。
func Run(f *Forcing, site *Site, p *Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	logger.Debugf("solar geometry: elev=%g lat=%g", site.Elev, site.Lat)
	sg := NewSolarGeom(site.Elev, site.Lat, p)

	return RunWithGeom(f, sg, site, p)
}

// 作成済みの太陽位置の表 sg を用いて一連の推定を行います。
func RunWithGeom(f *Forcing, sg *SolarGeom, site *Site, p *Params) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	// 気温 => 降水量 => 積雪 => 日射量・湿度 の順に計算する
	f.CalcTAir(site, p)
	f.CalcPrecip(site)
	f.CalcSnowpack(site, p)
	iter, err := f.CalcSradHum(sg, site, p)
	if err != nil {
		return nil, err
	}

	logger.Infof("MTCLIM計算完了: %d日, 反復%d回", f.Len(), iter)

	return &Result{
		Forcing:    f,
		Geom:       sg,
		Iterations: iter,
	}, nil
}
